package ptpip

import (
	"os"
	"time"

	"github.com/hanwen/go-ptpip/log"
	"github.com/hanwen/go-ptpip/ptp"
)

type DebugFlags struct {
	PTPIP bool
	Data  bool
}

// Config holds the initiator's identity and connection settings.
type Config struct {
	Name            string
	GUID            GUID
	ProtocolVersion ptp.UINT32

	// Timeout bounds each handshake step and each transaction. Zero
	// means no deadline.
	Timeout time.Duration

	Limits    Limits
	ChunkSize int
	Debug     DebugFlags

	// Log defaults to log.Root children according to Debug.
	Log *log.Children

	// Metrics may be nil.
	Metrics *Metrics
}

// DefaultConfig returns a config named after the host, with a random
// GUID.
func DefaultConfig() Config {
	name, err := os.Hostname()
	if err != nil || name == "" {
		name = "go-ptpip"
	}
	guid, _ := NewGUID()
	return Config{
		Name:            name,
		GUID:            guid,
		ProtocolVersion: ProtocolVersion,
		Timeout:         10 * time.Second,
		Limits:          DefaultLimits(),
		ChunkSize:       DefaultChunkSize,
	}
}

func (c *Config) children() *log.Children {
	if c.Log != nil {
		return c.Log
	}
	return log.PrepareChildren(log.Root, c.Debug.PTPIP, c.Debug.Data, false)
}
