package resolver

import (
	"regexp"
	"strconv"
	"strings"

	"recruitbot/internal/models"
)

var (
	numberPattern   = regexp.MustCompile(`\d+`)
	dislikeKeywords = []string{"дизлайк", "дислайк", "dislike"}
	likeKeywords    = []string{"лайк", "like"}
)

type ratio struct {
	Dislikes int
	Likes    int
	Value    float64
}

func (r ratio) OK() bool { return r.Value < models.DislikeRatioLimit }

// parseRatio is a narrow heuristic: the first two integers are assigned to
// dislikes and likes in the order the two keywords first appear. Other
// phrasings ("10 likes, 5 of them dislikes") are not understood.
func parseRatio(text string) (ratio, bool) {
	numbers := numberPattern.FindAllString(text, -1)
	if len(numbers) < 2 {
		return ratio{}, false
	}

	dislikeAt := firstIndex(text, dislikeKeywords)
	if dislikeAt < 0 {
		return ratio{}, false
	}
	// "dislike" содержит "like", поэтому сначала закрываем дизлайки
	masked := text
	for _, kw := range dislikeKeywords {
		masked = strings.ReplaceAll(masked, kw, strings.Repeat(" ", len(kw)))
	}
	likeAt := firstIndex(masked, likeKeywords)
	if likeAt < 0 {
		return ratio{}, false
	}

	first, err1 := strconv.Atoi(numbers[0])
	second, err2 := strconv.Atoi(numbers[1])
	if err1 != nil || err2 != nil {
		return ratio{}, false
	}

	r := ratio{Dislikes: first, Likes: second}
	if likeAt < dislikeAt {
		r = ratio{Dislikes: second, Likes: first}
	}
	total := r.Dislikes + r.Likes
	if total == 0 {
		return ratio{}, false
	}
	r.Value = float64(r.Dislikes) / float64(total)
	return r, true
}

func firstIndex(text string, keywords []string) int {
	best := -1
	for _, kw := range keywords {
		if i := strings.Index(text, kw); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	return best
}
