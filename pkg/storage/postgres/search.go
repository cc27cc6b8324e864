package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/rolodex-dev/rolodex/pkg/api"
	"github.com/rolodex-dev/rolodex/pkg/debug"
)

// SearchContacts returns one page of userID's contacts matching q.
//
// The WHERE clause is composed dynamically from the present criteria. The
// owner predicate comes first and is unconditional; optional criteria are
// AND-appended, with the name criterion spanning first_name OR last_name.
// The total is counted before LIMIT/OFFSET so it reflects all matches.
func (s *Store) SearchContacts(ctx context.Context, userID int64, q api.ContactSearch) (*api.ContactPage, error) {
	q = q.Normalize()

	where, args := composeContactPredicate(userID, q)
	debug.Log("search", "composed contact predicate", "where", where, "args", len(args))

	var total int
	countQuery := "SELECT count(*) FROM contacts WHERE " + where
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting contacts: %w", err)
	}

	pageQuery := fmt.Sprintf(`
		SELECT id, user_id, first_name, last_name, email, phone
		FROM contacts
		WHERE %s
		ORDER BY id
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, q.Size, q.Offset())

	rows, err := s.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	items := []api.Contact{}
	for rows.Next() {
		var c api.Contact
		if err := rows.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading contacts: %w", err)
	}

	return &api.ContactPage{
		Items: items,
		Meta:  api.PageMeta{Total: total, Page: q.Page, Size: q.Size},
	}, nil
}

// composeContactPredicate builds the WHERE clause and its positional
// arguments. All values travel as bind parameters; criteria text is never
// interpolated into the SQL itself.
func composeContactPredicate(userID int64, q api.ContactSearch) (string, []any) {
	clauses := []string{"user_id = $1"}
	args := []any{userID}

	if q.Name != "" {
		n := len(args) + 1
		clauses = append(clauses,
			fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", n, n))
		args = append(args, "%"+escapeLike(q.Name)+"%")
	}
	if q.Email != "" {
		clauses = append(clauses, fmt.Sprintf("email ILIKE $%d", len(args)+1))
		args = append(args, "%"+escapeLike(q.Email)+"%")
	}
	if q.Phone != "" {
		clauses = append(clauses, fmt.Sprintf("phone LIKE $%d", len(args)+1))
		args = append(args, "%"+escapeLike(q.Phone)+"%")
	}

	return strings.Join(clauses, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters in user-supplied criteria so
// a search for "100%" matches the literal text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
