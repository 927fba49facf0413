package gopaginate

const (
	NoLimit            = -1
	DefaultPerPage     = 10
	DefaultCurrentPage = 1
)

// IsNormalizedPerPageMax clamps perPage to maxPerPage. The second return value
// is false when clamping took place. NoLimit as maxPerPage disables clamping.
func IsNormalizedPerPageMax(perPage int, maxPerPage int) (int, bool) {
	if maxPerPage == NoLimit || maxPerPage <= 0 {
		return perPage, true
	} else if perPage > maxPerPage {
		return maxPerPage, false
	}

	return perPage, true
}

func NormalizePerPageMax(perPage int, maxPerPage int) int {
	ret, _ := IsNormalizedPerPageMax(perPage, maxPerPage)
	return ret
}
