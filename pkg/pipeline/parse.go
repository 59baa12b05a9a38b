package pipeline

import (
	"github.com/matzehuels/holepunch/pkg/errors"
	"github.com/matzehuels/holepunch/pkg/paper"
)

// ParseFolds parses a fold sequence in fold notation.
func ParseFolds(notation []string) ([]paper.Fold, error) {
	if len(notation) > MaxFolds {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at most %d folds allowed, got %d", MaxFolds, len(notation))
	}
	folds := make([]paper.Fold, 0, len(notation))
	for i, s := range notation {
		f, err := paper.ParseFold(s)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "fold %d", i+1)
		}
		folds = append(folds, f)
	}
	return folds, nil
}

// ParsePunches parses "x,y" punch points.
func ParsePunches(notation []string) ([]paper.GridPoint, error) {
	if len(notation) > MaxPunches {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at most %d punches allowed, got %d", MaxPunches, len(notation))
	}
	pts := make([]paper.GridPoint, 0, len(notation))
	for _, s := range notation {
		g, err := paper.ParseGridPoint(s)
		if err != nil {
			return nil, err
		}
		pts = append(pts, g)
	}
	return pts, nil
}
