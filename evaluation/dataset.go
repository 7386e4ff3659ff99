package evaluation

import (
	"encoding/json"
	"os"

	"github.com/habiliai/memorybank/errors"
)

// Case is one labeled retrieval example: a memory to store, a query to run
// and the content string the query is expected to retrieve.
type Case struct {
	Memory         string `json:"memory"`
	Query          string `json:"query"`
	ExpectedMemory string `json:"expected_memory"`
}

// LoadDataset reads a JSON array of cases from a file. An empty or missing
// dataset is a configuration error.
func LoadDataset(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dataset: %s", path)
	}

	var cases []Case
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal dataset: %s", path)
	}

	if len(cases) == 0 {
		return nil, errors.WithStack(errors.ErrEmptyDataset)
	}

	for i, c := range cases {
		if c.Memory == "" || c.Query == "" || c.ExpectedMemory == "" {
			return nil, errors.Wrapf(errors.ErrInvalidParams, "dataset entry %d has empty fields", i)
		}
	}

	return cases, nil
}
