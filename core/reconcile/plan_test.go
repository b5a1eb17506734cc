package reconcile

import (
	"context"
	"testing"

	"asset-sync/core/cachestore"
	"asset-sync/core/cachestore/memory"
	"asset-sync/core/manifest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resp(body string) *cachestore.Response {
	return &cachestore.Response{Status: 200, Body: []byte(body)}
}

func TestApplyPlan_EvictsThenPromotes(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	content, _ := store.Open(ctx, "app-cache")
	staging, _ := store.Open(ctx, "app-temp-cache")

	require.NoError(t, content.Put(ctx, origin+"/a.js", resp("preserved")))
	require.NoError(t, content.Put(ctx, origin+"/b.js", resp("stale")))
	require.NoError(t, staging.Put(ctx, origin+"/a.js", resp("fresh")))

	contentKeys, _ := content.Keys(ctx)
	stagingKeys, _ := staging.Keys(ctx)
	plan := BuildPlan(Input{
		Origin:      origin,
		ContentKeys: contentKeys,
		StagingKeys: stagingKeys,
		Current:     manifest.Map{"a.js": "h1", "b.js": "new"},
		Previous:    manifest.Map{"a.js": "h1", "b.js": "old"},
	})

	executed, err := ApplyPlan(ctx, content, staging, plan, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, executed)

	a, _ := content.Match(ctx, origin+"/a.js")
	require.NotNil(t, a)
	assert.Equal(t, "fresh", string(a.Body), "staged copy wins over preserved entry")

	b, _ := content.Match(ctx, origin+"/b.js")
	assert.Nil(t, b)
}

func TestApplyPlan_DryRun(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	content, _ := store.Open(ctx, "c")
	staging, _ := store.Open(ctx, "s")
	require.NoError(t, content.Put(ctx, origin+"/b.js", resp("x")))

	plan := BuildPlan(Input{Origin: origin, ContentKeys: []string{origin + "/b.js"}, Current: manifest.Map{}})
	executed, err := ApplyPlan(ctx, content, staging, plan, Options{DryRun: true})
	require.NoError(t, err)
	assert.Zero(t, executed)

	b, _ := content.Match(ctx, origin+"/b.js")
	assert.NotNil(t, b)
}

func TestApplyPlan_MissingStagedEntry(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	content, _ := store.Open(ctx, "c")
	staging, _ := store.Open(ctx, "s")

	plan := BuildPlan(Input{Origin: origin, StagingKeys: []string{origin + "/x.js"}, Current: manifest.Map{"x.js": "h"}})
	_, err := ApplyPlan(ctx, content, staging, plan, Options{})
	assert.Error(t, err)
}
