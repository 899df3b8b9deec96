package wx

// Ceiling returns the base of the first reported layer dense enough to
// form a ceiling (BKN, OVC or OVX), or nil when no such layer exists.
// The upstream orders layers lowest-first; the scan relies on that
// ordering rather than re-sorting.
func Ceiling(clouds []CloudLayer) *int {
	for _, layer := range clouds {
		switch layer.Cover {
		case CoverBKN, CoverOVC, CoverOVX:
			if layer.Base != nil {
				base := *layer.Base
				return &base
			}
		}
	}
	return nil
}

// LowestCloudBase returns the minimum defined base across all layers
// regardless of cover. FEW and SCT layers count here even though they
// never form a ceiling; the value is for storage and display only.
func LowestCloudBase(clouds []CloudLayer) *int {
	var lowest *int
	for _, layer := range clouds {
		if layer.Base == nil {
			continue
		}
		if lowest == nil || *layer.Base < *lowest {
			base := *layer.Base
			lowest = &base
		}
	}
	return lowest
}
