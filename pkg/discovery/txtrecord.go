package discovery

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/divelink/divelink-go/pkg/device"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeBridgeTXT creates the TXT records for a bridge.
func EncodeBridgeTXT(info *BridgeInfo) TXTRecordMap {
	txt := TXTRecordMap{
		TXTKeyDevice: info.Device.String(),
	}
	if info.SerialPort != "" {
		txt[TXTKeySerialPort] = info.SerialPort
	}
	if info.Baud > 0 {
		txt[TXTKeyBaud] = strconv.Itoa(info.Baud)
	}
	if info.Model != "" {
		txt[TXTKeyModel] = info.Model
	}
	if info.Serial != "" {
		txt[TXTKeySerial] = info.Serial
	}
	return txt
}

// DecodeBridgeTXT parses the TXT records of a bridge. Name and Port are
// not part of the records and stay empty.
func DecodeBridgeTXT(txt TXTRecordMap) (*BridgeInfo, error) {
	name, ok := txt[TXTKeyDevice]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyDevice)
	}
	typ, err := device.ParseType(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTXTRecord, err)
	}

	info := &BridgeInfo{
		Device:     typ,
		SerialPort: txt[TXTKeySerialPort],
		Model:      txt[TXTKeyModel],
		Serial:     txt[TXTKeySerial],
	}
	if s, ok := txt[TXTKeyBaud]; ok {
		baud, err := strconv.Atoi(s)
		if err != nil || baud <= 0 {
			return nil, fmt.Errorf("%w: invalid baud rate %q", ErrInvalidTXTRecord, s)
		}
		info.Baud = baud
	}
	return info, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to sorted "key=value" strings.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(result)
	return result
}

// StringsToTXTRecords parses "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			// Key without value (boolean flag)
			txt[parts[0]] = ""
		}
	}
	return txt
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInstanceNameTooLong)
	}
	if len(name) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}
