package doctor

import (
	"context"
	"errors"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/curlbaby/internal/core/config"
)

// ConfigCheck validates the configuration file.
type ConfigCheck struct {
	config     *config.Config
	configPath string
}

// NewConfigCheck creates a new configuration check.
func NewConfigCheck(cfg *config.Config, configPath string) *ConfigCheck {
	return &ConfigCheck{
		config:     cfg,
		configPath: configPath,
	}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(ctx context.Context) Report {
	report := Report{Name: c.Name()}

	switch info, err := os.Stat(c.configPath); {
	case c.configPath == "":
		report.pass("Config file", "none, using defaults")
	case err == nil && info.IsDir():
		report.fail("Config file", c.configPath+" is a directory")
	case err == nil:
		report.pass("Config file", c.configPath)
	case os.IsNotExist(err):
		report.pass("Config file", "not found, using defaults")
	default:
		report.fail("Config file", err.Error())
	}

	if c.config == nil {
		report.fail("Config loaded", "configuration not loaded")
		return report
	}

	if err := c.config.Validate(); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				label := fe.Field
				if label == "" {
					label = "validation"
				}
				report.fail(label, fe.Err.Error())
			}
		} else {
			report.fail("validation", err.Error())
		}
	} else {
		report.pass("Config valid", "")
	}

	for _, w := range c.config.Warnings() {
		report.warn(w.Field, w.Message)
	}

	return report
}
