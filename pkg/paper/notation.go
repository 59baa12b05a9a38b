package paper

import (
	"strconv"
	"strings"

	"github.com/matzehuels/holepunch/pkg/errors"
)

// Fold notation is a colon-separated triple used on the command line, in
// catalogue files and over the API:
//
//	h:up:1.5          horizontal fold along y = 1.5, bottom half moves up
//	v:left:0.5        vertical fold along x = 0.5, right part moves left
//	d:right:1,0:0,1   diagonal fold through (1, 0) and (0, 1)
//
// Long kind names ("horizontal") and one-letter sides ("l") are accepted too.

// String renders f in fold notation.
func (f Fold) String() string {
	switch f.Kind {
	case Horizontal:
		return "h:" + f.Side.String() + ":" + formatCoord(f.Intercept)
	case Vertical:
		return "v:" + f.Side.String() + ":" + formatCoord(f.Intercept)
	case Diagonal:
		a, b := f.Points()
		return "d:" + f.Side.String() + ":" + formatPair(a) + ":" + formatPair(b)
	}
	return "unknown"
}

// MarshalText encodes f in fold notation.
func (f Fold) MarshalText() ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return []byte(f.String()), nil
}

// UnmarshalText decodes fold notation.
func (f *Fold) UnmarshalText(text []byte) error {
	parsed, err := ParseFold(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFold parses fold notation. Errors carry errors.ErrCodeInvalidNotation,
// except for degenerate diagonal lines which carry errors.ErrCodeDomain.
func ParseFold(s string) (Fold, error) {
	parts := strings.Split(strings.TrimSpace(strings.ToLower(s)), ":")
	if len(parts) < 3 {
		return Fold{}, notationError(s, "want kind:side:line")
	}

	kind, err := parseKind(parts[0])
	if err != nil {
		return Fold{}, notationError(s, err.Error())
	}
	side, err := ParseSide(parts[1])
	if err != nil {
		return Fold{}, notationError(s, err.Error())
	}

	var f Fold
	switch kind {
	case Horizontal, Vertical:
		if len(parts) != 3 {
			return Fold{}, notationError(s, "want one intercept")
		}
		intercept, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return Fold{}, notationError(s, "bad intercept "+strconv.Quote(parts[2]))
		}
		if kind == Horizontal {
			f = HorizontalFold(side, intercept)
		} else {
			f = VerticalFold(side, intercept)
		}
	case Diagonal:
		if len(parts) != 4 {
			return Fold{}, notationError(s, "want two points x,y:x,y")
		}
		a, err := parsePair(parts[2])
		if err != nil {
			return Fold{}, notationError(s, err.Error())
		}
		b, err := parsePair(parts[3])
		if err != nil {
			return Fold{}, notationError(s, err.Error())
		}
		if f, err = DiagonalFold(side, a, b); err != nil {
			return Fold{}, err
		}
	}

	if err := f.Validate(); err != nil {
		return Fold{}, notationError(s, errors.UserMessage(err))
	}
	return f, nil
}

// ParseSide accepts "left", "right", "up", "down" or their first letter.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidNotation, "unknown side %q", s)
}

// ParseKind accepts "horizontal", "vertical", "diagonal" or their first letter.
func ParseKind(s string) (Kind, error) {
	k, err := parseKind(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidNotation, "%s", err.Error())
	}
	return k, nil
}

func parseKind(s string) (Kind, error) {
	switch s {
	case "h", "horizontal":
		return Horizontal, nil
	case "v", "vertical":
		return Vertical, nil
	case "d", "diagonal":
		return Diagonal, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidNotation, "unknown kind %q", s)
}

// MarshalText encodes g as "x,y", the form [ParseGridPoint] reads.
func (g GridPoint) MarshalText() ([]byte, error) {
	return []byte(strconv.Itoa(g.X) + "," + strconv.Itoa(g.Y)), nil
}

// UnmarshalText decodes "x,y" grid point notation.
func (g *GridPoint) UnmarshalText(text []byte) error {
	parsed, err := ParseGridPoint(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseGridPoint parses "x,y" (parentheses and spaces allowed) and checks
// that it addresses a cell of the grid.
func ParseGridPoint(s string) (GridPoint, error) {
	pos, err := parsePair(s)
	if err != nil {
		return GridPoint{}, errors.New(errors.ErrCodeInvalidNotation, "bad grid point %q: %s", s, errors.UserMessage(err))
	}
	g := GridPoint{X: int(pos.X), Y: int(pos.Y)}
	if g.Position() != pos {
		return GridPoint{}, errors.New(errors.ErrCodeInvalidNotation, "grid point %q must be integral", s)
	}
	if err := errors.ValidateGridPoint(g.X, g.Y); err != nil {
		return GridPoint{}, err
	}
	return g, nil
}

func parsePair(s string) (Position, error) {
	s = strings.Trim(strings.TrimSpace(s), "()")
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Position{}, errors.New(errors.ErrCodeInvalidNotation, "point %q needs x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return Position{}, errors.New(errors.ErrCodeInvalidNotation, "bad x in %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return Position{}, errors.New(errors.ErrCodeInvalidNotation, "bad y in %q", s)
	}
	return Position{X: x, Y: y}, nil
}

func formatPair(p Position) string {
	return formatCoord(p.X) + "," + formatCoord(p.Y)
}

func notationError(s, reason string) error {
	return errors.New(errors.ErrCodeInvalidNotation, "fold %q: %s", s, reason)
}
