package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pitosalas/blogbridge-sub012/internal/domain/model"
	"github.com/pitosalas/blogbridge-sub012/internal/usecases"
	"github.com/pitosalas/blogbridge-sub012/internal/usecases/commands"
	"github.com/pitosalas/blogbridge-sub012/internal/usecases/queries"
)

const idParam = "id"

type (
	criteriaData struct {
		Property  string `json:"property"`
		Operation string `json:"operation"`
		Value     string `json:"value"`
	}

	smartFeedLinks struct {
		Self     string `json:"self"`
		Articles string `json:"articles"`
	}

	smartFeedData struct {
		ID         string         `json:"id"`
		Title      string         `json:"title"`
		Query      string         `json:"query"`
		MatchAll   bool           `json:"matchAll"`
		Criteria   []criteriaData `json:"criteria"`
		MatchCount *int           `json:"matchCount,omitempty"`
		CreatedAt  time.Time      `json:"createdAt"`
		UpdatedAt  time.Time      `json:"updatedAt"`
		Links      smartFeedLinks `json:"links"`
	}

	articleData struct {
		ID          string    `json:"id"`
		FeedID      string    `json:"feedId"`
		FeedTitle   string    `json:"feedTitle,omitempty"`
		Title       string    `json:"title"`
		Author      string    `json:"author,omitempty"`
		Link        string    `json:"link,omitempty"`
		Tags        []string  `json:"tags"`
		PublishedAt time.Time `json:"publishedAt"`
		Read        bool      `json:"read"`
		Pinned      bool      `json:"pinned"`
		Sentiment   string    `json:"sentiment"`
	}

	saveSmartFeedRequest struct {
		Title string `json:"title"`
		Query string `json:"query"`
	}

	markReadRequest struct {
		Read *bool `json:"read"`
	}

	arrivedData struct {
		SmartFeeds []string `json:"smartFeeds"`
	}

	SmartFeedsHandler struct {
		app *usecases.Application
	}
)

func NewSmartFeedsHandler(app *usecases.Application) *SmartFeedsHandler {
	return &SmartFeedsHandler{app: app}
}

func (h *SmartFeedsHandler) DescribeProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.app.Queries.DescribeProperties.Execute(r.Context(), queries.DescribePropertiesQuery{})
	if err != nil {
		writeServiceError(w, err)

		return
	}

	writeEnveloped(w, http.StatusOK, properties, nil)
}

func (h *SmartFeedsHandler) ListSmartFeeds(w http.ResponseWriter, r *http.Request) {
	feeds, err := h.app.Queries.ListSmartFeeds.Execute(r.Context(), queries.ListSmartFeedsQuery{})
	if err != nil {
		writeServiceError(w, err)

		return
	}

	data := make([]smartFeedData, 0, len(feeds))
	for _, feed := range feeds {
		data = append(data, toSmartFeedData(feed, nil))
	}

	writeEnveloped(w, http.StatusOK, data, nil)
}

func (h *SmartFeedsHandler) GetSmartFeed(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseSmartFeedID(chi.URLParam(r, idParam))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidID, msgInvalidID)

		return
	}

	view, err := h.app.Queries.GetSmartFeed.Execute(r.Context(), queries.GetSmartFeedQuery{ID: id})
	if err != nil {
		writeServiceError(w, err)

		return
	}

	writeEnveloped(w, http.StatusOK, toSmartFeedData(view.SmartFeed, &view.MatchCount), nil)
}

func (h *SmartFeedsHandler) SaveSmartFeed(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseSmartFeedID(chi.URLParam(r, idParam))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidID, msgInvalidID)

		return
	}

	var req saveSmartFeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidJSON, msgInvalidRequestBody)

		return
	}

	feed, err := h.app.Commands.SaveSmartFeed.Handle(r.Context(), commands.SaveSmartFeedCommand{
		ID:    id,
		Title: req.Title,
		Query: req.Query,
	})
	if err != nil {
		writeServiceError(w, err)

		return
	}

	writeEnveloped(w, http.StatusOK, toSmartFeedData(feed, nil), nil)
}

func (h *SmartFeedsHandler) DeleteSmartFeed(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseSmartFeedID(chi.URLParam(r, idParam))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidID, msgInvalidID)

		return
	}

	if _, err := h.app.Commands.DeleteSmartFeed.Handle(r.Context(), commands.DeleteSmartFeedCommand{ID: id}); err != nil {
		writeServiceError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SmartFeedsHandler) ListSmartFeedArticles(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseSmartFeedID(chi.URLParam(r, idParam))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidID, msgInvalidID)

		return
	}

	page, err := parsePageRequest(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidPage, err.Error())

		return
	}

	list, err := h.app.Queries.ListSmartFeedArticles.Execute(r.Context(), queries.ListSmartFeedArticlesQuery{
		ID:   id,
		Page: page,
	})
	if err != nil {
		writeServiceError(w, err)

		return
	}

	data := make([]articleData, 0, len(list.Articles))
	for _, article := range list.Articles {
		data = append(data, toArticleData(article))
	}

	writeEnveloped(w, http.StatusOK, data, &list.Pagination)
}

// MarkArticleRead accepts an optional {"read": false} body to mark unread.
func (h *SmartFeedsHandler) MarkArticleRead(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseArticleID(chi.URLParam(r, idParam))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidID, msgInvalidID)

		return
	}

	var req markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidJSON, msgInvalidRequestBody)

		return
	}

	read := true
	if req.Read != nil {
		read = *req.Read
	}

	if _, err := h.app.Commands.MarkArticleRead.Handle(r.Context(), commands.MarkArticleReadCommand{ID: id, Read: read}); err != nil {
		writeServiceError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SmartFeedsHandler) ArticleArrived(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseArticleID(chi.URLParam(r, idParam))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeInvalidID, msgInvalidID)

		return
	}

	affected, err := h.app.Commands.ArticleArrived.Handle(r.Context(), commands.ArticleArrivedCommand{ID: id})
	if err != nil {
		writeServiceError(w, err)

		return
	}

	data := arrivedData{SmartFeeds: make([]string, 0, len(affected))}
	for _, feedID := range affected {
		data.SmartFeeds = append(data.SmartFeeds, feedID.String())
	}

	writeEnveloped(w, http.StatusOK, data, nil)
}

func parsePageRequest(r *http.Request) (model.PageRequest, error) {
	var page model.PageRequest

	values := r.URL.Query()

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return page, fmt.Errorf("page must be a positive number: %q", raw)
		}

		page.Page = uint(n)
	}

	if raw := values.Get("size"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return page, fmt.Errorf("size must be a positive number: %q", raw)
		}

		page.Size = uint(n)
	}

	return page.Normalize(), nil
}

func toSmartFeedData(feed *model.SmartFeed, matchCount *int) smartFeedData {
	self := fmt.Sprintf("/%s/smart-feeds/%s", apiVersion, feed.ID)

	data := smartFeedData{
		ID:         feed.ID.String(),
		Title:      feed.Title,
		Criteria:   []criteriaData{},
		MatchCount: matchCount,
		CreatedAt:  feed.CreatedAt,
		UpdatedAt:  feed.UpdatedAt,
		Links: smartFeedLinks{
			Self:     self,
			Articles: self + "/articles",
		},
	}

	if feed.Query == nil {
		return data
	}

	data.Query = feed.Query.String()
	data.MatchAll = feed.Query.IsAnd()

	for _, c := range feed.Query.All() {
		item := criteriaData{Value: c.Value()}

		if c.Property() != nil {
			item.Property = c.Property().Descriptor()
		}

		if c.Operation() != nil {
			item.Operation = c.Operation().Descriptor()
		}

		data.Criteria = append(data.Criteria, item)
	}

	return data
}

func toArticleData(article *model.Article) articleData {
	tags := article.Tags
	if tags == nil {
		tags = []string{}
	}

	return articleData{
		ID:          article.ID.String(),
		FeedID:      article.FeedID.String(),
		FeedTitle:   article.FeedTitle(),
		Title:       article.Title,
		Author:      article.Author,
		Link:        article.Link,
		Tags:        tags,
		PublishedAt: article.PublishedAt,
		Read:        article.Read,
		Pinned:      article.Pinned,
		Sentiment:   article.Sentiment.String(),
	}
}
