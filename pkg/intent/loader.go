package intent

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"

	"github.com/kisanmitra/kisanmitra/pkg/model"
)

// triggerFile is the on-disk shape of a trigger override
type triggerFile struct {
	Functions []TriggerEntry `yaml:"functions"`
}

// LoadTriggers reads a YAML trigger table override. The file fully
// replaces the built-in table, so entry order in the file becomes the
// tie-break registration order.
func LoadTriggers(path string) ([]TriggerEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read trigger file", goerr.V("path", path))
	}

	var file triggerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse trigger file", goerr.V("path", path))
	}

	if len(file.Functions) == 0 {
		return nil, goerr.New("trigger file has no functions", goerr.V("path", path))
	}

	seen := make(map[model.FunctionName]bool, len(file.Functions))
	for _, entry := range file.Functions {
		if entry.Function == "" {
			return nil, goerr.New("trigger entry has no function name", goerr.V("path", path))
		}
		if seen[entry.Function] {
			return nil, goerr.New("duplicate trigger entry", goerr.V("function", entry.Function))
		}
		seen[entry.Function] = true

		if len(entry.Phrases) == 0 {
			return nil, goerr.New("trigger entry has no phrases", goerr.V("function", entry.Function))
		}
		for _, p := range entry.Phrases {
			if p.Text == "" {
				return nil, goerr.New("empty trigger phrase", goerr.V("function", entry.Function))
			}
			if p.Weight <= 0 || p.Weight > 1 {
				return nil, goerr.New("trigger weight out of range",
					goerr.V("function", entry.Function),
					goerr.V("phrase", p.Text),
					goerr.V("weight", p.Weight))
			}
		}
	}

	return file.Functions, nil
}
