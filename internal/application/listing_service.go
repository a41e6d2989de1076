package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
	"github.com/DonOmbisi/kilimo3/internal/domain/repository"
	"github.com/DonOmbisi/kilimo3/pkg/activity"
	"github.com/DonOmbisi/kilimo3/pkg/apperrors"
	"github.com/DonOmbisi/kilimo3/pkg/helpers"
)

// ListingService owns listing CRUD, image uploads and search. New listings
// are announced on the activity queue; the worker mirrors them into
// Elasticsearch.
type ListingService struct {
	Repo      repository.ListingRepository
	GCS       *storage.Client
	GCSBucket string
	Pub       *helpers.RabbitPublisher
	ES        *elasticsearch.Client
	ESIndex   string
	Logger    *logrus.Logger
}

func NewListingService(repo repository.ListingRepository, gcs *storage.Client, gcsBucket string, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *ListingService {
	return &ListingService{Repo: repo, GCS: gcs, GCSBucket: gcsBucket, Pub: pub, ES: es, ESIndex: esIndex, Logger: logger}
}

type CreateListingInput struct {
	Title      string
	Desc       string
	Price      decimal.Decimal
	TotalStock int
	Images     []string
	Location   string
	ListingID  int64
}

func (s *ListingService) Create(ctx context.Context, ownerID string, in CreateListingInput) (*entity.Listing, error) {
	l := &entity.Listing{
		Title:      in.Title,
		Desc:       in.Desc,
		Price:      in.Price,
		TotalStock: in.TotalStock,
		Images:     in.Images,
		Location:   in.Location,
		OwnerID:    ownerID,
		ListingID:  in.ListingID,
	}
	if l.Images == nil {
		l.Images = []string{}
	}
	if err := s.Repo.Create(ctx, l); err != nil {
		return nil, err
	}
	s.publish(ctx, activity.Event{
		Type:       activity.ListingCreated,
		ActorID:    ownerID,
		EntityID:   l.ID,
		OccurredAt: time.Now().UTC(),
		Document: map[string]any{
			"id":       l.ID,
			"title":    l.Title,
			"desc":     l.Desc,
			"location": l.Location,
			"price":    l.Price.String(),
			"owner_id": l.OwnerID,
		},
	})
	return l, nil
}

func (s *ListingService) Get(ctx context.Context, id, viewerID string) (*entity.ListingDetail, error) {
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.IsUserOwner = viewerID != "" && viewerID == d.OwnerID
	return d, nil
}

func (s *ListingService) List(ctx context.Context) ([]entity.Listing, error) {
	return s.Repo.List(ctx)
}

// UploadImage stores an image in GCS under the listing's prefix and appends
// the public URL to the listing. Only the listing owner may upload.
func (s *ListingService) UploadImage(ctx context.Context, listingID, callerID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	d, err := s.Repo.GetByID(ctx, listingID)
	if err != nil {
		return "", err
	}
	if d.OwnerID != callerID {
		return "", apperrors.Unauthenticated("only the listing owner can upload images")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("listings", listingID, id+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Repo.AddImage(ctx, listingID, url); err != nil {
		return "", err
	}
	return url, nil
}

// Search performs a multi_match query over the listings index.
func (s *ListingService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "desc", "location"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *ListingService) publish(ctx context.Context, ev activity.Event) {
	if s.Pub == nil {
		return
	}
	if err := s.Pub.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("type", ev.Type).Warn("activity publish failed")
	}
}
