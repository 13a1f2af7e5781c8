package tts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIsPartitionedByGender(t *testing.T) {
	var male, female int
	seen := map[string]bool{}
	for _, v := range Catalog() {
		require.False(t, seen[v.Name], "duplicate voice %s", v.Name)
		seen[v.Name] = true
		switch v.Gender {
		case GenderMale:
			male++
		case GenderFemale:
			female++
		default:
			t.Fatalf("voice %s has unknown gender %q", v.Name, v.Gender)
		}
	}
	assert.Greater(t, male, 5)
	assert.Greater(t, female, 5)
	assert.GreaterOrEqual(t, male+female, 30)
}

func TestResolveVoiceDefault(t *testing.T) {
	v, err := ResolveVoice("google", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultVoiceName, v.Name)
	assert.Equal(t, "en-US-Chirp3-HD-Charon", v.ID)
	assert.Equal(t, "en-US", v.LanguageCode)
}

func TestResolveVoicePerProvider(t *testing.T) {
	v, err := ResolveVoice("gemini", "leda")
	require.NoError(t, err)
	assert.Equal(t, "Leda", v.ID)

	v, err = ResolveVoice("polly", "Leda")
	require.NoError(t, err)
	assert.Equal(t, "Ruth", v.ID)
}

func TestResolveVoicePollyGenderFallback(t *testing.T) {
	// Aoede has no Polly mapping; female default applies.
	v, err := ResolveVoice("polly", "Aoede")
	require.NoError(t, err)
	assert.Equal(t, "Ruth", v.ID)

	// Puck has no Polly mapping; male default applies.
	v, err = ResolveVoice("polly", "Puck")
	require.NoError(t, err)
	assert.Equal(t, "Matthew", v.ID)
}

func TestResolveVoiceRejectsUnknown(t *testing.T) {
	_, err := ResolveVoice("google", "NoSuchVoice")
	assert.Error(t, err)

	_, err = ResolveVoice("espeak", "Charon")
	assert.Error(t, err)
}
