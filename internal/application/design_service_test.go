package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/style-gallery-api/internal/testutil"
)

func TestCreateDesign(t *testing.T) {
	users, designs, index := testutil.NewUsers(), testutil.NewDesigns(), testutil.NewIndex()
	images := &testutil.Images{}
	svc := NewDesignService(designs, users, images, index, quietLogger())
	owner := testutil.Individual(t, users, "owner")

	d, err := svc.Create(context.Background(), CreateDesignInput{
		OwnerID:          owner.ID,
		Title:            "  Sunset  ",
		Description:      "<p>Warm tones</p><script>alert(1)</script>",
		Category:         "fashion",
		Image:            strings.NewReader("png-bytes"),
		ImageName:        "Sunset.PNG",
		ImageContentType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sunset", d.Title)
	assert.Equal(t, "<p>Warm tones</p>", d.Description)
	assert.Zero(t, d.Likes.Len())
	assert.Empty(t, d.Comments)
	assert.Zero(t, d.Shares)
	assert.True(t, strings.HasPrefix(d.ImageURL, "https://storage.test/designs/"+owner.ID+"/"))
	assert.True(t, strings.HasSuffix(d.ImageURL, ".png"))
	assert.Equal(t, "Sunset", index.Indexed[d.ID])

	stored, owner2, err := svc.Get(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, stored.ID)
	assert.Equal(t, owner.ID, owner2.ID)
}

func TestCreateDesignValidation(t *testing.T) {
	users, designs := testutil.NewUsers(), testutil.NewDesigns()
	svc := NewDesignService(designs, users, nil, nil, nil)
	owner := testutil.Individual(t, users, "owner")
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateDesignInput{OwnerID: owner.ID, Title: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, CreateDesignInput{OwnerID: owner.ID, Title: strings.Repeat("t", maxTitleLength+1)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, CreateDesignInput{OwnerID: testutil.NewID(), Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(ctx, CreateDesignInput{OwnerID: owner.ID, Title: "x", Image: strings.NewReader("b")})
	assert.Error(t, err)
}

func TestCreateDesignIndexFailureIsLogged(t *testing.T) {
	users, designs, index := testutil.NewUsers(), testutil.NewDesigns(), testutil.NewIndex()
	index.Err = errors.New("es down")
	svc := NewDesignService(designs, users, nil, index, quietLogger())
	owner := testutil.Individual(t, users, "owner")

	_, err := svc.Create(context.Background(), CreateDesignInput{OwnerID: owner.ID, Title: "x"})
	assert.NoError(t, err)
}

func TestListDesignsNewestFirst(t *testing.T) {
	users, designs := testutil.NewUsers(), testutil.NewDesigns()
	svc := NewDesignService(designs, users, nil, nil, nil)
	owner := testutil.Individual(t, users, "owner")
	for i, title := range []string{"old", "mid", "new"} {
		d := testutil.Design(t, designs, owner, title)
		d.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		require.NoError(t, designs.Delete(context.Background(), d.ID))
		require.NoError(t, designs.Create(context.Background(), d))
	}

	list, err := svc.List(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].Title)
	assert.Equal(t, "mid", list[1].Title)

	list, err = svc.List(context.Background(), 0, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "old", list[0].Title)
}

func TestSearchDropsStaleHits(t *testing.T) {
	users, designs, index := testutil.NewUsers(), testutil.NewDesigns(), testutil.NewIndex()
	svc := NewDesignService(designs, users, nil, index, nil)
	owner := testutil.Individual(t, users, "owner")
	d := testutil.Design(t, designs, owner, "Sunset")
	index.Hits = []string{testutil.NewID(), d.ID}

	got, err := svc.Search(context.Background(), "sun", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, d.ID, got[0].ID)

	_, err = svc.Search(context.Background(), "  ", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSearchWithoutIndex(t *testing.T) {
	svc := NewDesignService(testutil.NewDesigns(), testutil.NewUsers(), nil, nil, nil)
	got, err := svc.Search(context.Background(), "sun", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
