package nats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const portFileName = "taskr.port"

// PortInfo is what the primary process publishes so others can attach to
// its server.
type PortInfo struct {
	Port  int    `json:"port"`
	Token string `json:"token"`
}

// WritePort records the primary server's address in dataDir. The file is
// private to the user since it carries the auth token.
func WritePort(dataDir string, info PortInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encoding port file: %w", err)
	}
	path := filepath.Join(dataDir, portFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing port file: %w", err)
	}
	return os.Rename(tmp, path)
}

// ReadPort returns the address published by the primary process.
func ReadPort(dataDir string) (PortInfo, error) {
	var info PortInfo
	data, err := os.ReadFile(filepath.Join(dataDir, portFileName))
	if err != nil {
		return info, fmt.Errorf("reading port file: %w", err)
	}
	if err := json.Unmarshal(data, &info); err != nil {
		return info, fmt.Errorf("parsing port file: %w", err)
	}
	if info.Port <= 0 {
		return info, fmt.Errorf("port file has invalid port %d", info.Port)
	}
	return info, nil
}

func removePort(dataDir string) {
	_ = os.Remove(filepath.Join(dataDir, portFileName))
}
