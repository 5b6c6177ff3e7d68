package webfront

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	E "github.com/sagernet/sing/common/exceptions"
	"github.com/sagernet/sing/common/rw"
)

const DefaultPort = 8000

type Options struct {
	Bind      string `json:"local_address" toml:"local_address"`
	LocalPort uint16 `json:"local_port" toml:"local_port"`
	Document  string `json:"document" toml:"document"`
	Compress  bool   `json:"compress" toml:"compress"`
	H2C       bool   `json:"h2c" toml:"h2c"`
	LogLevel  string `json:"log_level" toml:"log_level"`
}

func DefaultOptions() Options {
	return Options{
		LocalPort: DefaultPort,
		Document:  DefaultDocument,
		LogLevel:  "info",
	}
}

// ReadOptions decodes the configuration file at path on top of options.
// Keys missing from the file keep their current values.
func ReadOptions(path string, options *Options) error {
	if !rw.FileExists(path) {
		return E.New("config file not found: ", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		content, err := os.ReadFile(path)
		if err != nil {
			return E.Cause(err, "read config file")
		}
		err = toml.Unmarshal(content, options)
		if err != nil {
			return E.Cause(err, "decode config file")
		}
		return nil
	}
	err := rw.ReadJSON(path, options)
	if err != nil {
		return E.Cause(err, "decode config file")
	}
	return nil
}

func (o Options) ListenAddress() string {
	return net.JoinHostPort(o.Bind, strconv.Itoa(int(o.LocalPort)))
}
