package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"auto_blogger_publisher/normalizer"
)

type processRequest struct {
	Type          string `json:"type"`
	Text          string `json:"text"`
	VoiceURL      string `json:"voiceUrl"`
	Link          string `json:"link"`
	PostToBlogger bool   `json:"postToBlogger"`
}

type processResponse struct {
	Title          string `json:"title"`
	HTML           string `json:"html"`
	ImageDataURL   string `json:"imageDataUrl"`
	BloggerPostURL string `json:"bloggerPostUrl,omitempty"`
}

// handleProcess runs the whole pipeline for one submission:
// validate -> normalize -> summarize -> illustrate -> publish? -> respond.
// Any step failure aborts the pipeline; no partial artifacts are returned.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	sub, err := req.submission()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pipelineTimeout)
	defer cancel()

	content, err := s.normalizer.Normalize(ctx, sub)
	if err != nil {
		s.failStep(w, "normalize", err)
		return
	}

	summary, err := s.summarizer.Summarize(ctx, content)
	if err != nil {
		s.failStep(w, "summarize", err)
		return
	}

	image, err := s.illustrator.Generate(ctx, summary.Title)
	if err != nil {
		s.failStep(w, "illustrate", err)
		return
	}

	resp := processResponse{
		Title:        summary.Title,
		HTML:         summary.HTML,
		ImageDataURL: image.DataURL(),
	}

	if req.PostToBlogger {
		post, err := s.publisher.Publish(ctx, summary.Title, summary.HTML)
		if err != nil {
			s.failStep(w, "publish", err)
			return
		}
		resp.BloggerPostURL = post.URL
	}

	writeJSON(w, http.StatusOK, resp)
}

// submission maps the loosely-shaped wire request onto the one variant it
// actually carries, rejecting anything with a missing payload.
func (r processRequest) submission() (normalizer.Submission, error) {
	kind := normalizer.Kind(strings.TrimSpace(r.Type))
	switch kind {
	case normalizer.KindText:
		if strings.TrimSpace(r.Text) == "" {
			return normalizer.Submission{}, errors.New("field \"text\" is required for type \"text\"")
		}
		return normalizer.Submission{Kind: kind, Payload: r.Text}, nil
	case normalizer.KindLink:
		if strings.TrimSpace(r.Link) == "" {
			return normalizer.Submission{}, errors.New("field \"link\" is required for type \"link\"")
		}
		return normalizer.Submission{Kind: kind, Payload: r.Link}, nil
	case normalizer.KindVoice:
		if strings.TrimSpace(r.VoiceURL) == "" {
			return normalizer.Submission{}, errors.New("field \"voiceUrl\" is required for type \"voice\"")
		}
		return normalizer.Submission{Kind: kind, Payload: r.VoiceURL}, nil
	case "":
		return normalizer.Submission{}, errors.New("field \"type\" is required")
	default:
		return normalizer.Submission{}, fmt.Errorf("unknown type %q", r.Type)
	}
}

func (s *Server) failStep(w http.ResponseWriter, step string, err error) {
	s.logger.Error("pipeline step failed", "step", step, "error", err)
	if errors.Is(err, normalizer.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
