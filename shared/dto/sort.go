package dto

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// Sort describes the ordering a repository applies to a list query. The API
// exposes no sort parameters; services set it for deterministic output.
type Sort struct {
	By  string
	Dir string
}

func SortByIDAsc() Sort {
	return Sort{By: "id", Dir: SortDirAsc}
}
