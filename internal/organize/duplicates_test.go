package organize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamo/photo-gallery/internal/models"
	"github.com/jamo/photo-gallery/internal/store"
)

func photoAt(id, name string, capturedAt time.Time, size int64) models.Photo {
	return models.Photo{
		ID:         id,
		Name:       name,
		CapturedAt: capturedAt,
		ByteSize:   size,
		Origin:     models.OriginLocal,
		State:      models.StatePending,
	}
}

var vacationTime = time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC)

func TestFindDuplicatesExactFingerprint(t *testing.T) {
	photos := []models.Photo{
		photoAt("a", "Vacation.jpg", vacationTime, 240500),
		photoAt("b", "Copy of Vacation.jpg", vacationTime, 240500),
	}

	groups := FindDuplicates(photos)

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, "1686825000000_240500", g.ID)
	require.Len(t, g.Photos, 2)
	assert.Equal(t, "a", g.Photos[0].ID)
	assert.Equal(t, "b", g.Photos[1].ID)

	// A third photo with a different size must not join or form a group.
	photos = append(photos, photoAt("c", "Vacation_edited.jpg", vacationTime, 198000))
	groups = FindDuplicates(photos)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Photos, 2)
}

func TestFindDuplicatesNoSingletonGroups(t *testing.T) {
	photos := []models.Photo{
		photoAt("a", "one.jpg", vacationTime, 100),
		photoAt("b", "two.jpg", vacationTime.Add(time.Hour), 100),
		photoAt("c", "three.jpg", vacationTime, 200),
	}

	assert.Empty(t, FindDuplicates(photos))
}

func TestFindDuplicatesGroupInvariants(t *testing.T) {
	base := time.Date(2023, 7, 20, 14, 15, 0, 0, time.UTC)
	photos := []models.Photo{
		photoAt("a", "x.jpg", base, 100),
		photoAt("b", "y.jpg", base.Add(time.Minute), 100),
		photoAt("c", "x-copy.jpg", base, 100),
		photoAt("d", "y-copy.jpg", base.Add(time.Minute), 100),
		photoAt("e", "unique.jpg", base, 333),
	}

	groups := FindDuplicates(photos)
	require.Len(t, groups, 2)
	for _, g := range groups {
		assert.GreaterOrEqual(t, len(g.Photos), 2)
		for _, p := range g.Photos[1:] {
			assert.True(t, p.CapturedAt.Equal(g.Photos[0].CapturedAt))
			assert.Equal(t, g.Photos[0].ByteSize, p.ByteSize)
		}
	}

	// First-seen fingerprint first.
	assert.Equal(t, "a", groups[0].Photos[0].ID)
	assert.Equal(t, "b", groups[1].Photos[0].ID)
}

func TestFindDuplicatesIdempotent(t *testing.T) {
	photos := []models.Photo{
		photoAt("a", "x.jpg", vacationTime, 100),
		photoAt("b", "x-copy.jpg", vacationTime, 100),
		photoAt("c", "unique.jpg", vacationTime, 200),
	}

	assert.Equal(t, FindDuplicates(photos), FindDuplicates(photos))
}

func TestResolveKeepsChosenPhoto(t *testing.T) {
	s := store.New()
	s.Append(
		photoAt("a", "x.jpg", vacationTime, 100),
		photoAt("b", "x (1).jpg", vacationTime, 100),
		photoAt("c", "x (2).jpg", vacationTime, 100),
	)

	groups := FindDuplicates(s.Photos())
	require.Len(t, groups, 1)

	Resolve(s, groups, groups[0].ID, "b")

	photos := s.Photos()
	require.Len(t, photos, 1)
	assert.Equal(t, "b", photos[0].ID)

	// Resolving the same, now-stale group id again is a no-op.
	fresh := FindDuplicates(s.Photos())
	Resolve(s, fresh, groups[0].ID, "b")
	assert.Equal(t, 1, s.Len())
}

func TestResolveUnknownGroupIsNoOp(t *testing.T) {
	s := store.New()
	s.Append(photoAt("a", "x.jpg", vacationTime, 100))

	Resolve(s, nil, "1686825000000_999", "a")
	assert.Equal(t, 1, s.Len())
}
