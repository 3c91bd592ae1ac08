package stories

import (
	"context"
	"errors"
	"io"
	"net/http"
	"story-generator/core"
	"story-generator/generation"
	"strings"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

type (
	// StoryGenerator turns generation options into a title and story.
	StoryGenerator interface {
		Generate(ctx context.Context, opts generation.Options) (*generation.Result, error)
	}

	SaveStoryRequest struct {
		Title  string `json:"title"`
		Prompt string `json:"prompt"`
		Story  string `json:"story"`
	}
	SaveStoryResponse struct {
		Message string `json:"message"`
	}

	ListStoriesResponse struct {
		Stories []core.Story `json:"stories"`
	}

	// ErrorResponse is the single error envelope of every endpoint.
	ErrorResponse struct {
		Error string `json:"error"`
	}
)

func (body *SaveStoryRequest) Bind(r *http.Request) error {
	body.Title = strings.TrimSpace(body.Title)
	body.Prompt = strings.TrimSpace(body.Prompt)
	body.Story = strings.TrimSpace(body.Story)
	if body.Prompt == "" || body.Story == "" {
		return errMissingFields
	}
	return nil
}

var errMissingFields = errors.New("both prompt and story are required")

func HandleGenerate(generator StoryGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := generation.DefaultOptions()
		if err := decode(r, &opts); err != nil {
			respondError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}

		result, err := generator.Generate(r.Context(), opts)
		if errors.Is(err, generation.ErrEmptyPrompt) {
			respondError(w, r, http.StatusBadRequest, "Prompt cannot be empty!")
			return
		}
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, "Story generation failed: "+err.Error())
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, result)
	}
}

func HandleSave(storyStore core.StoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := &SaveStoryRequest{}
		if err := decode(r, data); err != nil {
			respondError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
		if err := data.Bind(r); err != nil {
			respondError(w, r, http.StatusBadRequest, "Both prompt and story are required!")
			return
		}

		_, err := storyStore.Create(r.Context(), &core.Story{
			Title:  data.Title,
			Prompt: data.Prompt,
			Story:  data.Story,
		})
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, "Saving story failed: "+err.Error())
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, SaveStoryResponse{Message: "Story saved successfully!"})
	}
}

func HandleList(storyStore core.StoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stories, err := storyStore.FindAll(r.Context())
		if err != nil {
			logrus.WithField("error", err).Error("Error in get_stories")
			respondError(w, r, http.StatusInternalServerError, "Failed to fetch stories: "+err.Error())
			return
		}
		if stories == nil {
			stories = []core.Story{}
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, ListStoriesResponse{Stories: stories})
	}
}

// decode reads a JSON body into v. An empty body leaves v untouched so that
// missing fields fall through to the usual presence checks.
func decode(r *http.Request, v interface{}) error {
	if err := render.DecodeJSON(r.Body, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: message})
}
