package obslist

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Iron-Ham/obslist/internal/errors"
	"gopkg.in/yaml.v3"
)

// Decode parses an observation-list file, keeping blocks in file order.
// An empty input yields an empty list.
func Decode(r io.Reader) (*List, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return &List{}, nil
		}
		return nil, errors.Wrap(err, "failed to parse observation list")
	}
	if len(doc.Content) == 0 {
		return &List{}, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return &List{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.NewValidationError("observation list must be a mapping of observation blocks").
			WithField("document")
	}

	list := &List{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		number, err := headingNumber(key.Value)
		if err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("line %d: %v", key.Line, err)).
				WithField("heading").
				WithValue(key.Value)
		}

		var entry Entry
		if err := value.Decode(&entry); err != nil {
			return nil, errors.Wrapf(err, "failed to decode %s", key.Value)
		}
		entry.Number = number
		list.Entries = append(list.Entries, entry)
	}
	return list, nil
}

// headingNumber parses the N out of an "ObservationN" key.
func headingNumber(key string) (int, error) {
	digits, ok := strings.CutPrefix(key, headingPrefix)
	if !ok {
		return 0, fmt.Errorf("block %q is not an observation heading", key)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("block %q has no positive observation number", key)
	}
	return n, nil
}
