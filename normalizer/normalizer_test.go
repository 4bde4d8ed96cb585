package normalizer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranscriber struct {
	transcript string
	err        error
	gotAudio   []byte
	gotName    string
	calls      int
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audio []byte, filename string) (string, error) {
	f.calls++
	f.gotAudio = audio
	f.gotName = filename
	return f.transcript, f.err
}

func TestNormalizeTextVerbatim(t *testing.T) {
	n := New(nil, nil, nil)

	got, err := n.Normalize(context.Background(), Submission{Kind: KindText, Payload: "  mercado em alta  "})
	require.NoError(t, err)
	assert.Equal(t, "mercado em alta", got)
}

func TestNormalizeTextEmpty(t *testing.T) {
	n := New(nil, nil, nil)

	_, err := n.Normalize(context.Background(), Submission{Kind: KindText, Payload: "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNormalizeUnknownKind(t *testing.T) {
	n := New(nil, nil, nil)

	_, err := n.Normalize(context.Background(), Submission{Kind: "video", Payload: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNormalizeLink(t *testing.T) {
	page := `<html><head><title>Juros</title></head><body>
		<nav>Menu principal</nav>
		<article>
			<h1>Como os juros compostos funcionam</h1>
			<p>Os juros compostos fazem o dinheiro crescer de forma exponencial ao longo do tempo,
			porque os rendimentos de cada período passam a render também nos períodos seguintes.</p>
			<p>Quem começa a investir cedo aproveita muito mais esse efeito do que quem começa tarde,
			mesmo aportando valores menores todos os meses.</p>
		</article>
		<footer>Rodapé do site</footer>
	</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	n := New(srv.Client(), nil, nil)
	got, err := n.Normalize(context.Background(), Submission{Kind: KindLink, Payload: srv.URL})
	require.NoError(t, err)
	assert.Contains(t, got, "juros compostos")
	assert.NotContains(t, got, "Menu principal")
}

func TestNormalizeLinkFollowsRedirect(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>Conteúdo final após o redirecionamento da página.</p></body></html>"))
	}))
	defer final.Close()
	redirect := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL, http.StatusFound)
	}))
	defer redirect.Close()

	n := New(redirect.Client(), nil, nil)
	got, err := n.Normalize(context.Background(), Submission{Kind: KindLink, Payload: redirect.URL})
	require.NoError(t, err)
	assert.Contains(t, got, "redirecionamento")
}

func TestNormalizeLinkNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	n := New(srv.Client(), nil, nil)
	_, err := n.Normalize(context.Background(), Submission{Kind: KindLink, Payload: srv.URL})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
	assert.Contains(t, err.Error(), "404")
}

func TestNormalizeLinkMissingURL(t *testing.T) {
	n := New(nil, nil, nil)

	_, err := n.Normalize(context.Background(), Submission{Kind: KindLink})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNormalizeVoice(t *testing.T) {
	audio := []byte("fake mp3 bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(audio)
	}))
	defer srv.Close()

	tr := &fakeTranscriber{transcript: "transcrição do episódio"}
	n := New(srv.Client(), tr, nil)

	got, err := n.Normalize(context.Background(), Submission{Kind: KindVoice, Payload: srv.URL + "/episodio.mp3"})
	require.NoError(t, err)
	assert.Equal(t, "transcrição do episódio", got)
	assert.Equal(t, audio, tr.gotAudio)
	assert.Equal(t, "episodio.mp3", tr.gotName)
}

func TestNormalizeVoiceFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	tr := &fakeTranscriber{transcript: "nunca usado"}
	n := New(srv.Client(), tr, nil)

	_, err := n.Normalize(context.Background(), Submission{Kind: KindVoice, Payload: srv.URL})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
	assert.Zero(t, tr.calls)
}

func TestNormalizeVoiceTranscriberError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("audio"))
	}))
	defer srv.Close()

	tr := &fakeTranscriber{err: errors.New("speech service unavailable")}
	n := New(srv.Client(), tr, nil)

	_, err := n.Normalize(context.Background(), Submission{Kind: KindVoice, Payload: srv.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcription failed")
	assert.Contains(t, err.Error(), "speech service unavailable")
}

func TestNormalizeVoiceMissingURL(t *testing.T) {
	n := New(nil, &fakeTranscriber{}, nil)

	_, err := n.Normalize(context.Background(), Submission{Kind: KindVoice})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAudioFilename(t *testing.T) {
	cases := map[string]string{
		"https://cdn.example.com/ep/42.mp3":        "42.mp3",
		"https://cdn.example.com/ep/42.ogg?sig=ab": "42.ogg",
		"https://example.com/stream":               "audio.mp3",
		"https://example.com/":                     "audio.mp3",
	}
	for in, want := range cases {
		assert.Equal(t, want, audioFilename(in), in)
	}
}
