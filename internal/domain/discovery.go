package domain

// PortInfo describes one serial port reported by the toolchain.
// Discovery returns fresh values on every call; two calls never share
// or cache results, so value equality is the only meaningful comparison.
//
// Example JSON representation:
//
//	{
//	    "address": "/dev/ttyUSB0",
//	    "description": "Serial Port (USB) (VID:0x2341 PID:0x0043)"
//	}
type PortInfo struct {
	// Address is the device path or port name the toolchain flashes to.
	Address string `json:"address"`

	// Description is a human-readable label, optionally carrying the
	// USB vendor and product IDs when the toolchain reports them.
	Description string `json:"description,omitempty"`
}

// BoardInfo describes one installable board definition.
//
// Example JSON representation:
//
//	{
//	    "name": "Arduino Uno",
//	    "fqbn": "arduino:avr:uno"
//	}
type BoardInfo struct {
	// Name is the display name of the board.
	Name string `json:"name"`

	// FQBN is the fully qualified board name passed to compile/upload.
	FQBN string `json:"fqbn"`
}
