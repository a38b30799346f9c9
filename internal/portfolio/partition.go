package portfolio

import "portfolio-backend/internal/content"

// Partition splits videos into long-form and short-form sequences, keeping
// the input order in each. Videos with any other category are left out.
func Partition(videos []content.Video) (longs, shorts []content.Video) {
	longs = make([]content.Video, 0, len(videos))
	shorts = make([]content.Video, 0, len(videos))
	for _, v := range videos {
		switch v.Category {
		case content.CategoryLong:
			longs = append(longs, v)
		case content.CategoryShort:
			shorts = append(shorts, v)
		}
	}
	return longs, shorts
}
