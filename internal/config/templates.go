package config

import (
	"fmt"
	"os"
)

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(Template), 0o600)
}

const Template = `# DSP family: adau14xx | adau1x01 (chip names such as adau1701 are accepted)
variant = "adau14xx"

# largest payload accepted when reading packets
max_payload_bytes = 1048576

# table | json | yaml
output = "table"

# trace | debug | info | warn | error | off (default: $SIGMACTL_LOG_LEVEL or info)
# log_level = "info"
`
