package shearwater

import (
	"encoding/binary"
	"fmt"

	"github.com/divelink/divelink-go/pkg/status"
	"github.com/divelink/divelink-go/pkg/transport"
)

// Memory map.
const (
	// BaseAddress is the device address of logical memory offset zero.
	BaseAddress = 0xDD000000

	// MemorySize is the size of the complete device memory.
	MemorySize = 0x20080

	// ProfileSize is the size of the dive profile area at the start of
	// memory. The remainder holds device settings.
	ProfileSize = 0x20000
)

// Service identifiers.
const (
	sidReadByID     = 0x22
	sidWriteByID    = 0x2E
	sidInitDownload = 0x35
	sidBlock        = 0x36
	sidQuit         = 0x37
	sidNegative     = 0x7F

	// responses echo the request with bit 6 set
	responseBit = 0x40
)

// Data identifiers.
const (
	idSerial   = 0x8010
	idFirmware = 0x8011
)

const (
	// maxPayload is bounded by the one-byte length field.
	maxPayload = 0xFE

	// downloadFormat selects uncompressed transfer.
	downloadFormat = 0x00
	addressFormat  = 0x34

	// initAccepted is the second byte of a positive download response.
	initAccepted = 0x10

	// maxDownload is limited by the 24-bit size field.
	maxDownload = 0xFFFFFF
)

var (
	requestHeader  = [2]byte{0xFF, 0x01}
	responseHeader = [2]byte{0x01, 0xFF}
)

// encodePacket prefixes payload with a packet header.
func encodePacket(hdr [2]byte, payload []byte) []byte {
	pkt := make([]byte, 0, 4+len(payload))
	pkt = append(pkt, hdr[0], hdr[1], byte(len(payload)+1), 0x00)
	return append(pkt, payload...)
}

// decodePacket validates a packet header and returns the payload.
func decodePacket(hdr [2]byte, pkt []byte) ([]byte, error) {
	if len(pkt) < 5 {
		return nil, fmt.Errorf("packet too short (%d bytes)", len(pkt))
	}
	if pkt[0] != hdr[0] || pkt[1] != hdr[1] || pkt[3] != 0x00 {
		return nil, fmt.Errorf("unexpected header % X", pkt[:4])
	}
	payload := pkt[4:]
	if int(pkt[2]) != len(payload)+1 {
		return nil, fmt.Errorf("length byte %d for %d payload bytes", pkt[2], len(payload))
	}
	return payload, nil
}

// NegativeResponseError is a request rejected by the device.
type NegativeResponseError struct {
	Service uint8
	Code    uint8
}

func (e *NegativeResponseError) Error() string {
	return fmt.Sprintf("service 0x%02X rejected with code 0x%02X", e.Service, e.Code)
}

// conn exchanges packets over one SLIP framer.
type conn struct {
	framer *transport.SLIPFramer
}

func newConn(t transport.Transport) *conn {
	return &conn{framer: transport.NewSLIPFramerWithMaxSize(t, 4+maxPayload)}
}

// transfer sends req and returns the response payload, which must start
// with the positive response code for req.
func (c *conn) transfer(op string, req []byte) ([]byte, error) {
	if len(req) == 0 || len(req) > maxPayload {
		return nil, status.Errorf(op, status.InvalidArgs, "request of %d bytes", len(req))
	}
	if err := c.framer.WriteFrame(encodePacket(requestHeader, req)); err != nil {
		return nil, err
	}

	frame, err := c.framer.ReadFrame()
	if err != nil {
		return nil, err
	}
	payload, err := decodePacket(responseHeader, frame)
	if err != nil {
		c.framer.Reset()
		return nil, status.Wrap(op, status.Protocol, err)
	}

	if payload[0] == sidNegative {
		nre := &NegativeResponseError{Service: req[0]}
		if len(payload) >= 3 {
			nre.Code = payload[2]
		}
		return nil, status.Wrap(op, status.Protocol, nre)
	}
	if payload[0] != req[0]|responseBit {
		return nil, status.Errorf(op, status.Protocol, "response 0x%02X to request 0x%02X", payload[0], req[0])
	}
	return payload, nil
}

// readByID reads a data identifier.
func (c *conn) readByID(id uint16) ([]byte, error) {
	const op = "shearwater.rdbi"
	resp, err := c.transfer(op, []byte{sidReadByID, byte(id >> 8), byte(id)})
	if err != nil {
		return nil, err
	}
	if len(resp) < 3 || binary.BigEndian.Uint16(resp[1:]) != id {
		return nil, status.Errorf(op, status.Protocol, "response for wrong identifier % X", resp)
	}
	return resp[3:], nil
}

// writeByID writes a data identifier.
func (c *conn) writeByID(id uint16, data []byte) error {
	const op = "shearwater.wdbi"
	req := append([]byte{sidWriteByID, byte(id >> 8), byte(id)}, data...)
	resp, err := c.transfer(op, req)
	if err != nil {
		return err
	}
	if len(resp) < 3 || binary.BigEndian.Uint16(resp[1:]) != id {
		return status.Errorf(op, status.Protocol, "response for wrong identifier % X", resp)
	}
	return nil
}

// download reads len(p) bytes starting at device address addr: one init
// request, numbered block requests until p is full, and a quit request.
func (c *conn) download(addr uint32, p []byte) error {
	const op = "shearwater.download"
	size := len(p)
	if size > maxDownload {
		return status.Errorf(op, status.InvalidArgs, "download of %d bytes", size)
	}

	req := []byte{
		sidInitDownload, downloadFormat, addressFormat,
		byte(addr >> 24), byte(addr >> 16), byte(addr >> 8), byte(addr),
		byte(size >> 16), byte(size >> 8), byte(size),
	}
	resp, err := c.transfer(op, req)
	if err != nil {
		return err
	}
	if len(resp) < 2 || resp[1] != initAccepted {
		return status.Errorf(op, status.Protocol, "download not accepted: % X", resp)
	}

	done := 0
	for seq := byte(1); done < size; seq++ {
		resp, err := c.transfer(op, []byte{sidBlock, seq})
		if err != nil {
			return err
		}
		if len(resp) < 3 || resp[1] != seq {
			return status.Errorf(op, status.Protocol, "block %d: unexpected response % X", seq, resp[:min(len(resp), 2)])
		}
		data := resp[2:]
		if done+len(data) > size {
			return status.Errorf(op, status.Protocol, "block %d overruns request by %d bytes", seq, done+len(data)-size)
		}
		done += copy(p[done:], data)
	}

	_, err = c.transfer(op, []byte{sidQuit})
	return err
}
