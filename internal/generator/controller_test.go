package generator

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvgen/internal/domain"
)

type readyRecorder struct {
	mu     sync.Mutex
	states []domain.SessionState
}

func (r *readyRecorder) record(s domain.SessionState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *readyRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func newTestController(t *testing.T) (*Controller, *clockwork.FakeClock, *readyRecorder) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	rec := &readyRecorder{}
	c := NewController("test-session", WithClock(clock), WithOnReady(rec.record))
	t.Cleanup(c.Close)
	return c, clock, rec
}

func validAudio() *domain.RawFile {
	return &domain.RawFile{Name: "track.mp3", Type: domain.AudioMPEG, Size: 5_000_000}
}

func mustStyle(t *testing.T, name string) domain.StyleOption {
	t.Helper()
	s, ok := domain.StyleByName(name)
	require.True(t, ok, "style %q missing from catalog", name)
	return s
}

func waitReady(t *testing.T, c *Controller) {
	t.Helper()
	assert.Eventually(t, func() bool {
		return c.Snapshot().Status == domain.StatusReady
	}, time.Second, 5*time.Millisecond)
}

func TestNewController_StartsIdle(t *testing.T) {
	c, _, _ := newTestController(t)

	s := c.Snapshot()
	assert.Equal(t, "test-session", s.ID)
	assert.Equal(t, domain.StatusIdle, s.Status)
	assert.Nil(t, s.SelectedStyle)
	assert.Nil(t, s.HoveredIndex)
	assert.Nil(t, s.UploadedAudio)
	assert.Nil(t, s.ResultReference)
}

func TestSubmitAudio_Validation(t *testing.T) {
	tests := []struct {
		name      string
		candidate *domain.RawFile
		wantErr   error
	}{
		{name: "no file", candidate: nil, wantErr: domain.ErrNoFile},
		{name: "wav type", candidate: &domain.RawFile{Name: "a.wav", Type: "audio/wav", Size: 10}, wantErr: domain.ErrInvalidType},
		{name: "mp3 alias type", candidate: &domain.RawFile{Name: "a.mp3", Type: "audio/mp3", Size: 10}, wantErr: domain.ErrInvalidType},
		{name: "empty type", candidate: &domain.RawFile{Name: "a.mp3", Size: 10}, wantErr: domain.ErrInvalidType},
		{name: "case differs", candidate: &domain.RawFile{Name: "a.mp3", Type: "Audio/MPEG", Size: 10}, wantErr: domain.ErrInvalidType},
		{name: "type checked before size", candidate: &domain.RawFile{Name: "a.ogg", Type: "audio/ogg", Size: domain.MaxAudioBytes + 1}, wantErr: domain.ErrInvalidType},
		{name: "one byte over limit", candidate: &domain.RawFile{Name: "big.mp3", Type: domain.AudioMPEG, Size: domain.MaxAudioBytes + 1}, wantErr: domain.ErrTooLarge},
		{name: "exactly at limit", candidate: &domain.RawFile{Name: "edge.mp3", Type: domain.AudioMPEG, Size: domain.MaxAudioBytes}},
		{name: "empty mp3", candidate: &domain.RawFile{Name: "empty.mp3", Type: domain.AudioMPEG, Size: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _, _ := newTestController(t)

			audio, err := c.SubmitAudio(tc.candidate)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, c.Snapshot().UploadedAudio, "state must be unchanged on rejection")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.candidate.Name, audio.Name)
			require.NotNil(t, c.Snapshot().UploadedAudio)
			assert.Equal(t, audio, *c.Snapshot().UploadedAudio)
		})
	}
}

func TestSubmitAudio_RejectionKeepsPreviousUpload(t *testing.T) {
	c, _, _ := newTestController(t)
	_, err := c.SubmitAudio(validAudio())
	require.NoError(t, err)

	_, err = c.SubmitAudio(&domain.RawFile{Name: "clip.wav", Type: "audio/wav", Size: 1})
	require.ErrorIs(t, err, domain.ErrInvalidType)

	require.NotNil(t, c.Snapshot().UploadedAudio)
	assert.Equal(t, "track.mp3", c.Snapshot().UploadedAudio.Name)
}

func TestSelectStyle_IsIdempotentAndLeavesStatus(t *testing.T) {
	c, _, _ := newTestController(t)
	style := mustStyle(t, "Cosmic Nebula")

	c.SelectStyle(style)
	first := c.Snapshot()
	c.SelectStyle(style)
	second := c.Snapshot()

	assert.Equal(t, first, second)
	assert.Equal(t, domain.StatusIdle, second.Status)
	require.NotNil(t, second.SelectedStyle)
	assert.Equal(t, "Cosmic Nebula", second.SelectedStyle.Name)
}

func TestSelectStyle_DoesNotTouchResult(t *testing.T) {
	c, clock, _ := newTestController(t)
	_, err := c.SubmitAudio(validAudio())
	require.NoError(t, err)
	c.SelectStyle(mustStyle(t, "Urban Glitch"))
	require.NoError(t, c.RequestGeneration())
	clock.Advance(domain.GenerationDelay)
	waitReady(t, c)

	c.SelectStyle(mustStyle(t, "Matrix Code"))

	s := c.Snapshot()
	assert.Equal(t, domain.StatusReady, s.Status)
	require.NotNil(t, s.ResultReference)
	assert.Equal(t, domain.PlaceholderResult, *s.ResultReference)
}

func TestRequestGeneration_MissingInput(t *testing.T) {
	t.Run("nothing", func(t *testing.T) {
		c, _, _ := newTestController(t)
		assert.ErrorIs(t, c.RequestGeneration(), domain.ErrMissingInput)
		assert.Equal(t, domain.StatusIdle, c.Snapshot().Status)
	})

	t.Run("audio only", func(t *testing.T) {
		c, _, _ := newTestController(t)
		_, err := c.SubmitAudio(validAudio())
		require.NoError(t, err)
		assert.ErrorIs(t, c.RequestGeneration(), domain.ErrMissingInput)
		assert.Equal(t, domain.StatusIdle, c.Snapshot().Status)
	})

	t.Run("style only", func(t *testing.T) {
		c, _, _ := newTestController(t)
		c.SelectStyle(mustStyle(t, "VHS Retro"))
		assert.ErrorIs(t, c.RequestGeneration(), domain.ErrMissingInput)
		assert.Equal(t, domain.StatusIdle, c.Snapshot().Status)
	})
}

func TestRequestGeneration_RejectsReentry(t *testing.T) {
	c, clock, rec := newTestController(t)
	_, err := c.SubmitAudio(validAudio())
	require.NoError(t, err)
	c.SelectStyle(mustStyle(t, "Anime Visualizer"))

	require.NoError(t, c.RequestGeneration())
	assert.ErrorIs(t, c.RequestGeneration(), domain.ErrAlreadyInProgress)

	clock.Advance(domain.GenerationDelay)
	waitReady(t, c)
	clock.Advance(10 * domain.GenerationDelay)

	assert.Never(t, func() bool { return rec.count() > 1 }, 50*time.Millisecond, 5*time.Millisecond)
	assert.Equal(t, 1, rec.count())
}

func TestRequestGeneration_CompletesAfterDelay(t *testing.T) {
	c, clock, rec := newTestController(t)
	_, err := c.SubmitAudio(validAudio())
	require.NoError(t, err)
	c.SelectStyle(mustStyle(t, "Dreamscape AI"))

	require.NoError(t, c.RequestGeneration())
	s := c.Snapshot()
	assert.Equal(t, domain.StatusGenerating, s.Status)
	assert.Nil(t, s.ResultReference)

	clock.Advance(domain.GenerationDelay - time.Millisecond)
	s = c.Snapshot()
	assert.Equal(t, domain.StatusGenerating, s.Status)
	assert.Nil(t, s.ResultReference)

	clock.Advance(time.Millisecond)
	waitReady(t, c)
	s = c.Snapshot()
	require.NotNil(t, s.ResultReference)
	assert.Equal(t, domain.PlaceholderResult, *s.ResultReference)

	assert.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestRequestGeneration_RegenerateFromReady(t *testing.T) {
	c, clock, rec := newTestController(t)
	_, err := c.SubmitAudio(validAudio())
	require.NoError(t, err)
	c.SelectStyle(mustStyle(t, "Street Graffiti"))
	require.NoError(t, c.RequestGeneration())
	clock.Advance(domain.GenerationDelay)
	waitReady(t, c)

	require.NoError(t, c.RequestGeneration())
	s := c.Snapshot()
	assert.Equal(t, domain.StatusGenerating, s.Status)
	assert.Nil(t, s.ResultReference, "a new run clears the prior result")

	clock.Advance(domain.GenerationDelay)
	waitReady(t, c)
	assert.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestSubmitAudio_ResetsReadyResult(t *testing.T) {
	c, clock, _ := newTestController(t)
	_, err := c.SubmitAudio(validAudio())
	require.NoError(t, err)
	c.SelectStyle(mustStyle(t, "Cyberpunk City"))
	require.NoError(t, c.RequestGeneration())
	clock.Advance(domain.GenerationDelay)
	waitReady(t, c)

	_, err = c.SubmitAudio(&domain.RawFile{Name: "second.mp3", Type: domain.AudioMPEG, Size: 42})
	require.NoError(t, err)

	s := c.Snapshot()
	assert.Equal(t, domain.StatusIdle, s.Status)
	assert.Nil(t, s.ResultReference)
	assert.Equal(t, "second.mp3", s.UploadedAudio.Name)
	require.NotNil(t, s.SelectedStyle, "style survives a new upload")
}

func TestSubmitAudio_WhileGeneratingKeepsRun(t *testing.T) {
	c, clock, _ := newTestController(t)
	_, err := c.SubmitAudio(validAudio())
	require.NoError(t, err)
	c.SelectStyle(mustStyle(t, "Cyberpunk City"))
	require.NoError(t, c.RequestGeneration())

	_, err = c.SubmitAudio(&domain.RawFile{Name: "swap.mp3", Type: domain.AudioMPEG, Size: 7})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusGenerating, c.Snapshot().Status)

	clock.Advance(domain.GenerationDelay)
	waitReady(t, c)
}

func TestSubmitAudio_RejectionInReadyKeepsResult(t *testing.T) {
	c, clock, _ := newTestController(t)
	_, err := c.SubmitAudio(validAudio())
	require.NoError(t, err)
	c.SelectStyle(mustStyle(t, "Urban Glitch"))
	require.NoError(t, c.RequestGeneration())
	clock.Advance(domain.GenerationDelay)
	waitReady(t, c)

	_, err = c.SubmitAudio(&domain.RawFile{Name: "huge.mp3", Type: domain.AudioMPEG, Size: domain.MaxAudioBytes + 1})
	require.ErrorIs(t, err, domain.ErrTooLarge)

	s := c.Snapshot()
	assert.Equal(t, domain.StatusReady, s.Status)
	assert.NotNil(t, s.ResultReference)
}

func TestHover(t *testing.T) {
	c, _, _ := newTestController(t)

	c.SetHovered(3)
	require.NotNil(t, c.Snapshot().HoveredIndex)
	assert.Equal(t, 3, *c.Snapshot().HoveredIndex)

	c.SetHovered(5)
	assert.Equal(t, 5, *c.Snapshot().HoveredIndex)

	c.ClearHovered()
	assert.Nil(t, c.Snapshot().HoveredIndex)

	c.ClearHovered()
	assert.Nil(t, c.Snapshot().HoveredIndex)
	assert.Equal(t, domain.StatusIdle, c.Snapshot().Status)
}

func TestClose_StopsOutstandingRun(t *testing.T) {
	c, clock, rec := newTestController(t)
	_, err := c.SubmitAudio(validAudio())
	require.NoError(t, err)
	c.SelectStyle(mustStyle(t, "Matrix Code"))
	require.NoError(t, c.RequestGeneration())

	c.Close()
	c.Close()
	clock.Advance(domain.GenerationDelay)

	assert.Never(t, func() bool { return rec.count() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	assert.Equal(t, domain.StatusGenerating, c.Snapshot().Status)
}

func TestLastActive_TracksMutations(t *testing.T) {
	c, clock, _ := newTestController(t)
	created := c.LastActive()

	clock.Advance(time.Minute)
	c.SetHovered(1)

	assert.Equal(t, created.Add(time.Minute), c.LastActive())
}

func TestSnapshot_IsIsolated(t *testing.T) {
	c, _, _ := newTestController(t)
	c.SelectStyle(mustStyle(t, "VHS Retro"))

	s := c.Snapshot()
	s.SelectedStyle.Name = "tampered"

	assert.Equal(t, "VHS Retro", c.Snapshot().SelectedStyle.Name)
}

func TestScenario_UploadSelectGenerate(t *testing.T) {
	c, clock, _ := newTestController(t)

	_, err := c.SubmitAudio(&domain.RawFile{Name: "track.mp3", Type: "audio/mpeg", Size: 5_000_000})
	require.NoError(t, err)
	c.SelectStyle(mustStyle(t, "VHS Retro"))
	require.NoError(t, c.RequestGeneration())
	assert.Equal(t, domain.StatusGenerating, c.Snapshot().Status)

	clock.Advance(3000 * time.Millisecond)
	waitReady(t, c)
	s := c.Snapshot()
	require.NotNil(t, s.ResultReference)
	assert.NotEmpty(t, *s.ResultReference)
}
