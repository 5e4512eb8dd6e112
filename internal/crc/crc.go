package crc

import (
	"github.com/sigurn/crc16"
)

// CRC-16/CCITT generator polynomial (x^16 + x^12 + x^5 + 1)
const CCITTPoly = 0x1021

// Pre-computed CRC table. The XMODEM parameter set is CCITT with a zero
// initial value, no reflection and no final xor, which is what the device
// checks against.
var table *crc16.Table

// init initializes the pre-computed CRC table
func init() {
	table = crc16.MakeTable(crc16.CRC16_XMODEM)
}

// Initial returns the register value callers start from before the first byte
func Initial() uint16 {
	return crc16.Init(table)
}

// Update feeds one byte into a running CRC-16/CCITT register, MSB first
func Update(crc uint16, b byte) uint16 {
	return crc16.Update(crc, []byte{b}, table)
}

// Checksum calculates the CRC-16/CCITT of a whole buffer
func Checksum(data []byte) uint16 {
	return crc16.Complete(crc16.Update(Initial(), data, table), table)
}
