package schema

import (
	"os"

	"github.com/meridios/cura/errors"
	"gopkg.in/yaml.v3"
)

// extensionsFile is the YAML shape of a field extensions file. Deployments
// with local vocabularies add their columns here instead of patching the
// built-in table.
//
// Expected format:
//
//	fields:
//	  - column: new_beam_energy
//	    property: https://vocab.example.org/physics#beamEnergy
//	    format: plain
//	    merge: REPLACE_ALL
//	  - column: new_detector_notes
//	    property: https://vocab.example.org/physics#detectorNotes
//	    format: multilingual
//	    merge: REPLACE_BY_LANGUAGE
type extensionsFile struct {
	Fields []FieldConfig `yaml:"fields"`
}

// loadExtensions reads additional field configurations from a YAML file.
// Individual configs are validated later when the merged registry is built;
// here only the file itself must be readable and well-formed.
func loadExtensions(path string) ([]FieldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfig, "read field extensions %s: %v", path, err)
	}

	var file extensionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(errors.ErrConfig, "parse field extensions %s: %v", path, err)
	}

	if len(file.Fields) == 0 {
		return nil, errors.Wrapf(errors.ErrConfig, "field extensions %s: no fields declared", path)
	}

	return file.Fields, nil
}
