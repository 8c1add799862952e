package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/aretw0/surveyflow/pkg/adapters/memory"
	"github.com/aretw0/surveyflow/pkg/domain"
	"github.com/aretw0/surveyflow/pkg/persistence/middleware"
	"github.com/aretw0/surveyflow/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, middleware.KeySize)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func secretRecord(id string) *domain.WorkflowRecord {
	return &domain.WorkflowRecord{
		ID:       id,
		SurveyID: "survey-1",
		Language: domain.LanguageEnglish,
		Finals:   []string{"question_1_q1"},
		Workflow: &domain.Workflow{
			Name:         "Ride Feedback",
			GlobalPrompt: "You are calling Sam at +1 555 0100.",
		},
	}
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunWorkflowStoreContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	// Setup
	underlyingStore := memory.NewStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	id := "wf-1"

	// 1. Save
	require.NoError(t, secureStore.Save(ctx, id, secretRecord(id)))

	// 2. Verify Underlying Store directly (Should be sealed)
	stored, err := underlyingStore.Load(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, stored.Workflow)
	assert.Empty(t, stored.Finals)
	assert.NotEmpty(t, stored.Sealed)
	assert.NotContains(t, stored.Sealed, "Sam")
	assert.Equal(t, "survey-1", stored.SurveyID)

	// 3. Load via Middleware (Should be decrypted)
	loaded, err := secureStore.Load(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, loaded.Workflow)
	assert.Equal(t, "You are calling Sam at +1 555 0100.", loaded.Workflow.GlobalPrompt)
	assert.Equal(t, []string{"question_1_q1"}, loaded.Finals)
	assert.Empty(t, loaded.Sealed)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()
	id := "rotation"

	secureStoreOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlyingStore)
	require.NoError(t, secureStoreOld.Save(ctx, id, secretRecord(id)))

	// Load with NEW key (Active) + OLD key (Fallback)
	secureStoreNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlyingStore)

	loaded, err := secureStoreNew.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ride Feedback", loaded.Workflow.Name)

	// Save again with the NEW key; the old key alone can no longer read it.
	require.NoError(t, secureStoreNew.Save(ctx, id, loaded))
	_, err = secureStoreOld.Load(ctx, id)
	assert.Error(t, err)
}

func TestEncryptionMiddleware_PlainRecordRejected(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlyingStore.Save(ctx, "plain", secretRecord("plain")))

	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	_, err := secureStore.Load(ctx, "plain")
	assert.ErrorContains(t, err, "missing encrypted data envelope")
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	})
}
