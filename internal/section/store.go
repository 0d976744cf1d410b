// Package section keeps the editable state of one CV section: its ordered
// entries plus the validation messages of the entries the user has touched.
package section

import (
	"errors"
	"fmt"
	"sort"

	"cv-builder/internal/model"
	"cv-builder/internal/validation"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrNotAList      = errors.New("field is not a list")
	ErrItemIndex     = errors.New("item index out of range")
)

// Entry is the pointer side of an entry type.
type Entry[E any] interface {
	*E
	EntryID() model.EntryID
	SetEntryID(model.EntryID)
	Set(field string, v any) error
}

type Config[E any] struct {
	Section model.Section
	// New returns an entry with its default values; nil means the zero value.
	New      func() E
	Validate func(E) validation.FieldErrors
	// RequireOne keeps at least one entry once the section has any.
	RequireOne bool
	// OnChange receives a copy of the entries after every mutation.
	OnChange func([]E)
}

// EntryErrors groups the messages of one entry for display.
type EntryErrors struct {
	Index  int                    `json:"index"`
	ID     model.EntryID          `json:"id"`
	Fields validation.FieldErrors `json:"fields"`
}

// Editor is the type-erased view of a Store used by callers that address
// sections by name.
type Editor interface {
	Section() model.Section
	Len() int
	AddEntry() model.EntryID
	UpdateEntry(id model.EntryID, field string, v any) error
	RemoveEntry(id model.EntryID) error
	AddListItem(id model.EntryID, field, value string) error
	SetListItem(id model.EntryID, field string, idx int, value string) error
	RemoveListItem(id model.EntryID, field string, idx int) error
	Summary() []EntryErrors
	ValidateAll() []EntryErrors
}

// Store holds one section's entries. It is not safe for concurrent use.
type Store[E any, P Entry[E]] struct {
	cfg     Config[E]
	ids     *model.IDSource
	entries []E
	touched map[model.EntryID]bool
	errs    map[int]validation.FieldErrors
}

func New[E any, P Entry[E]](ids *model.IDSource, cfg Config[E]) *Store[E, P] {
	return &Store[E, P]{
		cfg:     cfg,
		ids:     ids,
		entries: []E{},
		touched: map[model.EntryID]bool{},
		errs:    map[int]validation.FieldErrors{},
	}
}

func (s *Store[E, P]) Section() model.Section { return s.cfg.Section }

func (s *Store[E, P]) Len() int { return len(s.entries) }

// Entries returns a copy of the current entries.
func (s *Store[E, P]) Entries() []E {
	return append([]E{}, s.entries...)
}

// Add appends an empty entry with a fresh ID.
func (s *Store[E, P]) Add() []E {
	s.entries = append(s.entries, s.fresh())
	return s.changed()
}

// Update sets one field of the entry with the given ID.
func (s *Store[E, P]) Update(id model.EntryID, field string, v any) ([]E, error) {
	i, err := s.index(id)
	if err != nil {
		return nil, err
	}
	if err := P(&s.entries[i]).Set(field, s.truncate(field, v)); err != nil {
		return nil, err
	}
	s.touched[id] = true
	return s.changed(), nil
}

// Remove deletes an entry. A RequireOne section gets a fresh empty entry
// instead of becoming empty.
func (s *Store[E, P]) Remove(id model.EntryID) ([]E, error) {
	i, err := s.index(id)
	if err != nil {
		return nil, err
	}
	delete(s.touched, id)
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	if s.cfg.RequireOne && len(s.entries) == 0 {
		s.entries = append(s.entries, s.fresh())
	}
	return s.changed(), nil
}

// AddItem appends value to a list field of the entry.
func (s *Store[E, P]) AddItem(id model.EntryID, field, value string) ([]E, error) {
	return s.editList(id, field, func(items []string) ([]string, error) {
		return append(items, value), nil
	})
}

// SetItem replaces the item at idx in a list field.
func (s *Store[E, P]) SetItem(id model.EntryID, field string, idx int, value string) ([]E, error) {
	return s.editList(id, field, func(items []string) ([]string, error) {
		if idx < 0 || idx >= len(items) {
			return nil, fmt.Errorf("%w: %d", ErrItemIndex, idx)
		}
		items[idx] = value
		return items, nil
	})
}

// RemoveItem drops the item at idx. The entry itself stays even when its
// list becomes empty.
func (s *Store[E, P]) RemoveItem(id model.EntryID, field string, idx int) ([]E, error) {
	return s.editList(id, field, func(items []string) ([]string, error) {
		if idx < 0 || idx >= len(items) {
			return nil, fmt.Errorf("%w: %d", ErrItemIndex, idx)
		}
		return append(items[:idx], items[idx+1:]...), nil
	})
}

func (s *Store[E, P]) editList(id model.EntryID, field string, edit func([]string) ([]string, error)) ([]E, error) {
	i, err := s.index(id)
	if err != nil {
		return nil, err
	}
	holder, ok := any(P(&s.entries[i])).(model.ListHolder)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNotAList, s.cfg.Section, field)
	}
	items, ok := holder.List(field)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNotAList, s.cfg.Section, field)
	}
	next, err := edit(append([]string{}, items...))
	if err != nil {
		return nil, err
	}
	for j := range next {
		next[j] = validation.Truncate(s.cfg.Section, field, next[j])
	}
	holder.SetList(field, next)
	s.touched[id] = true
	return s.changed(), nil
}

// Errors returns the current messages keyed by entry position.
func (s *Store[E, P]) Errors() map[int]validation.FieldErrors {
	out := make(map[int]validation.FieldErrors, len(s.errs))
	for k, v := range s.errs {
		out[k] = v
	}
	return out
}

// Summary flattens Errors into a list ordered by position.
func (s *Store[E, P]) Summary() []EntryErrors {
	out := make([]EntryErrors, 0, len(s.errs))
	for i, fe := range s.errs {
		out = append(out, EntryErrors{Index: i, ID: P(&s.entries[i]).EntryID(), Fields: fe})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Index < out[b].Index })
	return out
}

// ValidateAll marks every entry as touched and returns the full summary.
// It is called when the user tries to leave the step.
func (s *Store[E, P]) ValidateAll() []EntryErrors {
	for i := range s.entries {
		s.touched[P(&s.entries[i]).EntryID()] = true
	}
	s.revalidate()
	return s.Summary()
}

// Replace swaps in entries loaded from elsewhere without notifying OnChange.
// Existing IDs advance the ID source. Entries without an ID, or repeating an
// ID seen earlier in the slice, get a fresh one.
func (s *Store[E, P]) Replace(entries []E) []E {
	s.entries = append([]E{}, entries...)
	for i := range s.entries {
		p := P(&s.entries[i])
		if p.EntryID() != 0 {
			s.ids.Observe(p.EntryID())
		}
	}
	seen := make(map[model.EntryID]bool, len(s.entries))
	for i := range s.entries {
		p := P(&s.entries[i])
		if id := p.EntryID(); id == 0 || seen[id] {
			p.SetEntryID(s.ids.Next())
		}
		seen[p.EntryID()] = true
	}
	s.touched = map[model.EntryID]bool{}
	s.revalidate()
	return s.Entries()
}

func (s *Store[E, P]) fresh() E {
	var e E
	if s.cfg.New != nil {
		e = s.cfg.New()
	}
	P(&e).SetEntryID(s.ids.Next())
	return e
}

func (s *Store[E, P]) AddEntry() model.EntryID {
	s.Add()
	return P(&s.entries[len(s.entries)-1]).EntryID()
}

func (s *Store[E, P]) UpdateEntry(id model.EntryID, field string, v any) error {
	_, err := s.Update(id, field, v)
	return err
}

func (s *Store[E, P]) RemoveEntry(id model.EntryID) error {
	_, err := s.Remove(id)
	return err
}

func (s *Store[E, P]) AddListItem(id model.EntryID, field, value string) error {
	_, err := s.AddItem(id, field, value)
	return err
}

func (s *Store[E, P]) SetListItem(id model.EntryID, field string, idx int, value string) error {
	_, err := s.SetItem(id, field, idx, value)
	return err
}

func (s *Store[E, P]) RemoveListItem(id model.EntryID, field string, idx int) error {
	_, err := s.RemoveItem(id, field, idx)
	return err
}

func (s *Store[E, P]) index(id model.EntryID) (int, error) {
	for i := range s.entries {
		if P(&s.entries[i]).EntryID() == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s/%d", ErrEntryNotFound, s.cfg.Section, id)
}

func (s *Store[E, P]) truncate(field string, v any) any {
	switch t := v.(type) {
	case string:
		return validation.Truncate(s.cfg.Section, field, t)
	case []string:
		out := make([]string, len(t))
		for i, it := range t {
			out[i] = validation.Truncate(s.cfg.Section, field, it)
		}
		return out
	}
	return v
}

func (s *Store[E, P]) revalidate() {
	s.errs = map[int]validation.FieldErrors{}
	if s.cfg.Validate == nil {
		return
	}
	for i := range s.entries {
		if !s.touched[P(&s.entries[i]).EntryID()] {
			continue
		}
		if fe := s.cfg.Validate(s.entries[i]); len(fe) > 0 {
			s.errs[i] = fe
		}
	}
}

func (s *Store[E, P]) changed() []E {
	s.revalidate()
	out := s.Entries()
	if s.cfg.OnChange != nil {
		s.cfg.OnChange(out)
	}
	return out
}
