package memory_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/repository/memory"
	"github.com/m-mizutani/octosync/pkg/repository/testhelper"
)

func TestMemoryRepository(t *testing.T) {
	testhelper.TestAll(t, memory.New())
}

func TestSelectionIsCopied(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	selection := model.NewSelection("alpha", "beta")
	gt.NoError(t, repo.PutSelection(ctx, selection))
	selection[0] = "mutated"

	got := gt.R1(repo.GetSelection(ctx)).NoError(t)
	gt.V(t, got.Strings()).Equal([]string{"alpha", "beta"})

	got[1] = "mutated"
	again := gt.R1(repo.GetSelection(ctx)).NoError(t)
	gt.V(t, again.Strings()).Equal([]string{"alpha", "beta"})
}
