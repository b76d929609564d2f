package helper

import "encoding/json"

/* =========================================================
   PatchField tri-state (Unset / Null / Set(value))
   ========================================================= */

type PatchField[T any] struct {
	Set   bool `json:"-"`
	Null  bool `json:"-"`
	Value *T   `json:"-"`
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Set = true
	if string(b) == "null" {
		p.Null = true
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

// Apply menimpa dst kalau field dikirim; null jadi zero value.
func (p PatchField[T]) Apply(dst *T) {
	if !p.Set {
		return
	}
	if p.Null || p.Value == nil {
		var zero T
		*dst = zero
		return
	}
	*dst = *p.Value
}

// ApplyPtr untuk kolom nullable: null → nil.
func (p PatchField[T]) ApplyPtr(dst **T) {
	if !p.Set {
		return
	}
	if p.Null || p.Value == nil {
		*dst = nil
		return
	}
	v := *p.Value
	*dst = &v
}

func Set[T any](v T) PatchField[T] { return PatchField[T]{Set: true, Value: &v} }
