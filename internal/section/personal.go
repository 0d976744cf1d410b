package section

import (
	"cv-builder/internal/model"
	"cv-builder/internal/validation"
)

// PersonalStore is the single-record counterpart of Store for personal info.
type PersonalStore struct {
	info     model.PersonalInfo
	touched  map[string]bool
	errs     validation.FieldErrors
	onChange func(model.PersonalInfo)
}

func NewPersonal(onChange func(model.PersonalInfo)) *PersonalStore {
	return &PersonalStore{
		touched:  map[string]bool{},
		errs:     validation.FieldErrors{},
		onChange: onChange,
	}
}

func (s *PersonalStore) Info() model.PersonalInfo { return s.info }

// Set updates one field, re-validates the touched fields and propagates.
func (s *PersonalStore) Set(field string, v any) (model.PersonalInfo, error) {
	if str, ok := v.(string); ok {
		v = validation.Truncate(model.SectionPersonal, field, str)
	}
	if err := s.info.Set(field, v); err != nil {
		return s.info, err
	}
	s.touched[field] = true
	s.revalidate()
	if s.onChange != nil {
		s.onChange(s.info)
	}
	return s.info, nil
}

// Errors returns the messages for touched fields.
func (s *PersonalStore) Errors() validation.FieldErrors {
	out := make(validation.FieldErrors, len(s.errs))
	for k, v := range s.errs {
		out[k] = v
	}
	return out
}

// ValidateAll touches every field and returns all messages.
func (s *PersonalStore) ValidateAll() validation.FieldErrors {
	for _, f := range model.PersonalFields {
		s.touched[f] = true
	}
	s.revalidate()
	return s.Errors()
}

// Replace loads info without notifying and forgets touched fields.
func (s *PersonalStore) Replace(info model.PersonalInfo) {
	s.info = info
	s.touched = map[string]bool{}
	s.revalidate()
}

func (s *PersonalStore) revalidate() {
	s.errs = validation.FieldErrors{}
	for f := range s.touched {
		if r := validation.PersonalField(s.info, f); !r.Valid {
			s.errs[f] = r.Message
		}
	}
}
