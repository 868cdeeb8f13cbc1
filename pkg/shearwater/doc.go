// Package shearwater implements the Shearwater Predator family: the device
// protocol (Device), the dive log decoder (Parser), an in-memory device
// simulator (Simulator) and an encoder for synthetic dives (EncodeDive).
//
// # Dive Layout
//
// A dive is a sequence of 128-byte blocks: one header block, the profile
// (16-byte records), and one footer block.
//
//	header  [0:2]   FF FF marker
//	        [8]     units (0 metric, 1 imperial)
//	        [12:16] start time, seconds since the Unix epoch (BE)
//	        [20:25] O2 percent per gas mix
//	        [30:35] He percent per gas mix
//	        [47:49] surface pressure, mbar (BE)
//	        [83:85] water density, kg/m³ (BE)
//	record  [0:2]   depth, 1/10 m or ft (BE)
//	        [2:4]   deco stop depth, m or ft, 0 when no stop (BE)
//	        [7]     O2 percent
//	        [8]     He percent
//	        [9]     stop time or NDL, minutes
//	        [13]    temperature, °C or °F
//	footer  [0:2]   FF FD marker
//	        [4:6]   max depth, m or ft (BE)
//	        [6:8]   dive time, minutes (BE)
//
// All-zero records are padding and produce no samples.
//
// # Protocol
//
// Packets are SLIP framed. A request is [FF 01 len 00] followed by the
// payload, a response [01 FF len 00] followed by the payload, where len is
// the payload size plus one. Identification uses read-by-identifier (0x22),
// memory is transferred with the download commands 0x35/0x36/0x37.
package shearwater
