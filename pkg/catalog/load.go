package catalog

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/holepunch/pkg/errors"
	"github.com/matzehuels/holepunch/pkg/paper"
)

type catalogFile struct {
	Fold []foldEntry `toml:"fold"`
}

type foldEntry struct {
	Name      string    `toml:"name"`
	Notation  string    `toml:"notation"`
	Kind      string    `toml:"kind"`
	Side      string    `toml:"side"`
	Intercept *float64  `toml:"intercept"`
	From      []float64 `toml:"from"`
	To        []float64 `toml:"to"`
}

// Load reads a TOML catalogue from path.
func Load(path string) (Catalog, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "open catalogue")
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a TOML catalogue. Unknown keys, malformed folds and duplicate
// folds are rejected with errors.ErrCodeInvalidCatalog.
func Decode(r io.Reader) (Catalog, error) {
	var file catalogFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode catalogue")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if len(file.Fold) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "catalogue has no folds")
	}

	c := make(Catalog, 0, len(file.Fold))
	for i, fe := range file.Fold {
		f, err := fe.fold()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "fold #%d", i+1)
		}
		if c.Contains(f) {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "fold #%d: %s listed twice", i+1, f)
		}
		name := fe.Name
		if name == "" {
			name = f.String()
		}
		c = append(c, Entry{Name: name, Fold: f})
	}
	return c, nil
}

func (fe foldEntry) fold() (paper.Fold, error) {
	if fe.Notation != "" {
		if fe.Kind != "" || fe.Side != "" || fe.Intercept != nil || fe.From != nil || fe.To != nil {
			return paper.Fold{}, errors.New(errors.ErrCodeInvalidCatalog, "notation cannot be combined with kind, side or line fields")
		}
		return paper.ParseFold(fe.Notation)
	}

	kind, err := paper.ParseKind(fe.Kind)
	if err != nil {
		return paper.Fold{}, err
	}
	side, err := paper.ParseSide(fe.Side)
	if err != nil {
		return paper.Fold{}, err
	}

	var f paper.Fold
	switch kind {
	case paper.Horizontal, paper.Vertical:
		if fe.Intercept == nil {
			return paper.Fold{}, errors.New(errors.ErrCodeInvalidCatalog, "%s fold needs an intercept", kind)
		}
		if kind == paper.Horizontal {
			f = paper.HorizontalFold(side, *fe.Intercept)
		} else {
			f = paper.VerticalFold(side, *fe.Intercept)
		}
	case paper.Diagonal:
		a, err := pair("from", fe.From)
		if err != nil {
			return paper.Fold{}, err
		}
		b, err := pair("to", fe.To)
		if err != nil {
			return paper.Fold{}, err
		}
		if f, err = paper.DiagonalFold(side, a, b); err != nil {
			return paper.Fold{}, err
		}
	}
	if err := f.Validate(); err != nil {
		return paper.Fold{}, err
	}
	return f, nil
}

func pair(field string, v []float64) (paper.Position, error) {
	if len(v) != 2 {
		return paper.Position{}, errors.New(errors.ErrCodeInvalidCatalog, "%s must be [x, y]", field)
	}
	return paper.Position{X: v[0], Y: v[1]}, nil
}
