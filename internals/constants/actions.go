package constants

// Kode aksi per item checklist:
// P = Periksa, B = Bersihkan, L = Luminasi, T = Tambah
const (
	ActionPeriksa   = "P"
	ActionBersihkan = "B"
	ActionLuminasi  = "L"
	ActionTambah    = "T"
)

var ValidActions = map[string]struct{}{
	ActionPeriksa:   {},
	ActionBersihkan: {},
	ActionLuminasi:  {},
	ActionTambah:    {},
}

func IsValidAction(code string) bool {
	_, ok := ValidActions[code]
	return ok
}
