package descriptor

import "github.com/divelink/divelink-go/pkg/device"

// Interface cables.
var (
	ftdiSerial   = USBID{VID: 0x0403, PID: 0x6001}
	oceanicCable = USBID{VID: 0x0403, PID: 0xF460}
	reefnetCable = USBID{VID: 0x0403, PID: 0x6015}
)

var table = []Descriptor{
	{Vendor: "Suunto", Product: "Eon", Type: device.TypeSuuntoEon, Transports: TransportSerial},
	{Vendor: "Suunto", Product: "Solution Alpha", Type: device.TypeSuuntoEon, Model: 1, Transports: TransportSerial},
	{Vendor: "Suunto", Product: "Vyper", Type: device.TypeSuuntoVyper, Model: 0x0A, Transports: TransportSerial, USB: []USBID{ftdiSerial}},
	{Vendor: "Suunto", Product: "Cobra", Type: device.TypeSuuntoVyper, Model: 0x0C, Transports: TransportSerial, USB: []USBID{ftdiSerial}},
	{Vendor: "Suunto", Product: "Stinger", Type: device.TypeSuuntoVyper, Model: 0x03, Transports: TransportSerial, USB: []USBID{ftdiSerial}},
	{Vendor: "Suunto", Product: "Vyper2", Type: device.TypeSuuntoVyper2, Model: 0x10, Transports: TransportSerial, USB: []USBID{ftdiSerial}},
	{Vendor: "Suunto", Product: "Cobra2", Type: device.TypeSuuntoVyper2, Model: 0x11, Transports: TransportSerial, USB: []USBID{ftdiSerial}},
	{Vendor: "Suunto", Product: "D9", Type: device.TypeSuuntoD9, Model: 0x0E, Transports: TransportSerial, USB: []USBID{ftdiSerial}},
	{Vendor: "Suunto", Product: "D6", Type: device.TypeSuuntoD9, Model: 0x0F, Transports: TransportSerial, USB: []USBID{ftdiSerial}},
	{Vendor: "Reefnet", Product: "Sensus Pro", Type: device.TypeReefnetSensusPro, Transports: TransportSerial, USB: []USBID{reefnetCable}},
	{Vendor: "Reefnet", Product: "Sensus Ultra", Type: device.TypeReefnetSensusUltra, Transports: TransportSerial, USB: []USBID{reefnetCable}},
	{Vendor: "Uwatec", Product: "Aladin", Type: device.TypeUwatecAladin, Transports: TransportSerial},
	{Vendor: "Uwatec", Product: "Memomouse", Type: device.TypeUwatecMemomouse, Transports: TransportSerial},
	{Vendor: "Uwatec", Product: "Smart Pro", Type: device.TypeUwatecSmart, Model: 0x10, Transports: TransportIrDA},
	{Vendor: "Uwatec", Product: "Galileo Sol", Type: device.TypeUwatecSmart, Model: 0x11, Transports: TransportIrDA},
	{Vendor: "Oceanic", Product: "Atom 2.0", Type: device.TypeOceanicAtom2, Model: 0x4342, Transports: TransportSerial, USB: []USBID{oceanicCable}},
	{Vendor: "Oceanic", Product: "Veo 250", Type: device.TypeOceanicVeo250, Model: 0x424C, Transports: TransportSerial, USB: []USBID{oceanicCable}},
	{Vendor: "Shearwater", Product: "Predator", Type: device.TypeShearwaterPredator, Model: 2, Transports: TransportSerial | TransportBluetooth, USB: []USBID{ftdiSerial}},
}
