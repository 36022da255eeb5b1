package dialect

import (
	"github.com/kanda123-lab/querygen/engine/models"
	"github.com/kanda123-lab/querygen/mapping"
)

// MySQL renders `backtick` identifiers, AUTO_INCREMENT columns and
// INSERT IGNORE / ON DUPLICATE KEY UPDATE / REPLACE conflict handling.
type MySQL struct{ base }

func (MySQL) Name() string { return mapping.MySQL }

func (MySQL) Quote(ident string) string { return quoteWith(ident, "`", "`") }

func (MySQL) AutoIncrement(declaredType string) AutoIncrement {
	return AutoIncrement{Type: declaredType, Suffix: "AUTO_INCREMENT"}
}

func (MySQL) Conflict(mode models.ConflictMode, _, updateColumns []string) (Conflict, error) {
	switch mode {
	case models.ConflictNone:
		return Conflict{Verb: "INSERT INTO"}, nil
	case models.ConflictIgnore:
		return Conflict{Verb: "INSERT IGNORE INTO"}, nil
	case models.ConflictUpdate:
		if len(updateColumns) == 0 {
			return Conflict{Verb: "INSERT IGNORE INTO"}, nil
		}
		set := assignments(updateColumns, func(col string) string { return "VALUES(" + col + ")" })
		return Conflict{Verb: "INSERT INTO", Suffix: "ON DUPLICATE KEY UPDATE " + set}, nil
	case models.ConflictReplace:
		return Conflict{Verb: "REPLACE INTO"}, nil
	}
	return Conflict{}, unsupported("ON CONFLICT " + string(mode))
}

func (MySQL) Comments() CommentStyle { return CommentsInline }
