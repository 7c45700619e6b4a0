package types

// AliasEntry maps a colloquial trigger phrase to canonical-title variants,
// most specific first.
type AliasEntry struct {
	Phrase  string   `json:"phrase" yaml:"phrase" validate:"required"`
	Targets []string `json:"targets" yaml:"targets" validate:"required,min=1,dive,required"`
}
