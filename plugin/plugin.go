// Package plugin registers annoclaim as a golangci-lint module plugin.
//
// Example .custom-gcl.yml:
//
//	version: v2.0.0
//	plugins:
//	  - module: github.com/zanata/annoclaim
//	    import: github.com/zanata/annoclaim/plugin
//
// Example .golangci.yml:
//
//	linters:
//	  enable:
//	    - annoclaim
//	  settings:
//	    custom:
//	      annoclaim:
//	        type: module
//	        settings:
//	          options:
//	            annoclaim.annotations: example.com/anno.Cacheable
//	            annoclaim.verbose: "true"
package plugin

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/zanata/annoclaim"
)

func init() {
	register.Plugin("annoclaim", New)
}

// Settings is the plugin configuration read from .golangci.yml.
type Settings struct {
	Options     map[string]string `json:"options"`
	OptionsFile string            `json:"options-file"`
	Processors  []string          `json:"processors"`
	// ReportUnclaimed defaults to true.
	ReportUnclaimed *bool `json:"report-unclaimed"`
}

type plugin struct {
	settings Settings
}

// New decodes the plugin settings.
func New(conf any) (register.LinterPlugin, error) {
	settings, err := register.DecodeSettings[Settings](conf)
	if err != nil {
		return nil, err
	}
	return &plugin{settings: settings}, nil
}

func (p *plugin) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	disable := false
	if p.settings.ReportUnclaimed != nil {
		disable = !*p.settings.ReportUnclaimed
	}
	return []*analysis.Analyzer{
		annoclaim.New(annoclaim.Config{
			Options:                p.settings.Options,
			OptionsFile:            p.settings.OptionsFile,
			Processors:             p.settings.Processors,
			DisableUnclaimedReport: disable,
		}),
	}, nil
}

// GetLoadMode needs type information to resolve import names.
func (p *plugin) GetLoadMode() string {
	return register.LoadModeTypesInfo
}
