package installer

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type (
	InstallationType struct {
		ID          string `toml:"id"`
		Name        string `toml:"name"`
		Description string `toml:"description"`
		Guide       string `toml:"guide"`
		NextSteps   []Step `toml:"step"`
	}

	// Step is one line of the guidance printed after a successful install.
	Step struct {
		Label   string `toml:"label"`
		Command string `toml:"command"`
		Hint    string `toml:"hint"`
	}

	catalogFile struct {
		Types []InstallationType `toml:"type"`
	}
)

//go:embed catalog.toml
var catalogTOML string

// LoadCatalog decodes the installation types shipped with the binary.
func LoadCatalog() ([]InstallationType, error) {
	return ParseCatalog(catalogTOML)
}

func ParseCatalog(doc string) (types []InstallationType, err error) {
	var cf catalogFile

	md, err := toml.Decode(doc, &cf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode installation type catalog: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i := range undecoded {
			keys[i] = undecoded[i].String()
		}

		return nil, fmt.Errorf("unknown keys in installation type catalog: %s", strings.Join(keys, ", "))
	}

	if err = validate(cf.Types); err != nil {
		return nil, err
	}

	return cf.Types, nil
}

func validate(types []InstallationType) error {
	if len(types) == 0 {
		return errors.New("installation type catalog is empty")
	}

	seen := make(map[string]struct{}, len(types))

	for i, t := range types {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("installation type #%d has an empty id", i+1)
		}

		if strings.ContainsAny(t.ID, `/\`) || t.ID == "." || t.ID == ".." {
			return fmt.Errorf("installation type id %q is not a plain directory name", t.ID)
		}

		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("installation type id %q is declared more than once", t.ID)
		}

		seen[t.ID] = struct{}{}

		if t.Name == "" {
			return fmt.Errorf("installation type %q has no name", t.ID)
		}

		if len(t.NextSteps) == 0 {
			return fmt.Errorf("installation type %q has no next steps", t.ID)
		}
	}

	return nil
}

func Lookup(types []InstallationType, id string) (InstallationType, bool) {
	for _, t := range types {
		if t.ID == id {
			return t, true
		}
	}

	return InstallationType{}, false
}
