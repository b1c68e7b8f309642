//go:generate mockgen -source list_cloud_images.go -destination ../../../internal/mocks/mock_cloud_client.go -package mocks CloudClient

package commands

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/buildgrid/buildgrid/internal/authz"
	serverconfig "github.com/buildgrid/buildgrid/internal/server/config"
	"github.com/buildgrid/buildgrid/pkg/connection"
	"github.com/buildgrid/buildgrid/pkg/encoder"
	"github.com/buildgrid/buildgrid/pkg/holder"
	"github.com/buildgrid/buildgrid/pkg/logger"
	"github.com/buildgrid/buildgrid/pkg/pagination"
	"github.com/buildgrid/buildgrid/pkg/storage"
	"github.com/buildgrid/buildgrid/pkg/types"
)

// CloudImageStatus is the live state a provider reports for one image.
type CloudImageStatus struct {
	State    string
	AgentIDs []string
}

// CloudClient is the provider-facing collaborator. Describe calls go over the
// wire and are the only fallible step of cloud image node resolution.
type CloudClient interface {
	DescribeImage(ctx context.Context, profileID, imageID string) (CloudImageStatus, error)
}

type ListCloudImagesRequest struct {
	// PoolID limits the listing to images that start agents in one pool.
	PoolID string
	Page   pagination.Arguments
}

type ListCloudImagesResponse struct {
	Connection connection.Connection[storage.CloudImage, types.CloudImageNode, types.ImageInstanceContext]

	Nodes      []types.CloudImageNode
	Errors     []connection.EdgeError
	NextCursor string
}

// ListCloudImagesQuery lists the images of every configured cloud profile.
// Profiles of the same account frequently expose the same image, so the
// combined stream is deduplicated by image key before pagination. Node
// resolution performs a live describe call per in-window image; a failing
// describe marks that edge only.
type ListCloudImagesQuery struct {
	backend    storage.CloudBackend
	client     CloudClient
	authFilter authz.Filter
	codec      *encoder.CursorCodec
	logger     logger.Logger

	describeCache   storage.InMemoryCache[types.CloudImageNode]
	describeTTL     time.Duration
	describeRetries uint64
}

type ListCloudImagesQueryOption func(*ListCloudImagesQuery)

func WithListCloudImagesQueryLogger(l logger.Logger) ListCloudImagesQueryOption {
	return func(q *ListCloudImagesQuery) {
		q.logger = l
	}
}

func WithListCloudImagesQueryAuthFilter(f authz.Filter) ListCloudImagesQueryOption {
	return func(q *ListCloudImagesQuery) {
		q.authFilter = f
	}
}

// WithDescribeCache overrides the cache resolved image nodes are served from.
func WithDescribeCache(cache storage.InMemoryCache[types.CloudImageNode], ttl time.Duration) ListCloudImagesQueryOption {
	return func(q *ListCloudImagesQuery) {
		q.describeCache = cache
		q.describeTTL = ttl
	}
}

// WithDescribeRetries bounds the retry attempts per describe call.
func WithDescribeRetries(retries uint64) ListCloudImagesQueryOption {
	return func(q *ListCloudImagesQuery) {
		q.describeRetries = retries
	}
}

func NewListCloudImagesQuery(backend storage.CloudBackend, client CloudClient, codec *encoder.CursorCodec, opts ...ListCloudImagesQueryOption) *ListCloudImagesQuery {
	q := &ListCloudImagesQuery{
		backend:         backend,
		client:          client,
		authFilter:      authz.NewAllowAll(),
		codec:           codec,
		logger:          logger.NewNoopLogger(),
		describeCache: storage.NewInMemoryLRUCache[types.CloudImageNode](
			storage.WithMaxCacheSize[types.CloudImageNode](serverconfig.DefaultCloudDescribeCacheSize),
		),
		describeTTL:     serverconfig.DefaultCloudDescribeCacheTTL,
		describeRetries: serverconfig.DefaultCloudDescribeRetries,
	}

	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *ListCloudImagesQuery) Execute(ctx context.Context, req *ListCloudImagesRequest) (*ListCloudImagesResponse, error) {
	ctx, span := tracer.Start(ctx, "ListCloudImagesQuery.Execute")
	defer span.End()

	candidates, err := q.imageCandidates(ctx, req)
	if err != nil {
		return nil, err
	}

	nodeFn := func(image storage.CloudImage) (types.CloudImageNode, error) {
		return q.describeImage(ctx, image)
	}

	conn := connection.NewPaginating(candidates, nodeFn, imageInstanceContext, boundPage(req.Page), q.codec)
	result := conn.Edges()

	observePage("cloudImages", result.Window, len(result.Errors))
	if len(result.Errors) > 0 {
		q.logger.WarnWithContext(ctx, "cloud image page resolved with partial errors",
			zap.Int("edge_failures", len(result.Errors)),
			zap.Int("window", result.Window.Len()),
		)
	}

	return &ListCloudImagesResponse{
		Connection: conn,
		Nodes:      result.Nodes,
		Errors:     result.Errors,
		NextCursor: nextCursor(q.codec, result.Window, len(candidates)),
	}, nil
}

// imageCandidates streams every profile's image records through a
// deduplicating holder and returns the distinct images in first-seen order.
func (q *ListCloudImagesQuery) imageCandidates(ctx context.Context, req *ListCloudImagesRequest) ([]storage.CloudImage, error) {
	profiles, err := q.backend.ListCloudProfiles(ctx)
	if err != nil {
		return nil, backendError("list cloud profiles", err)
	}

	var combined storage.CloudImageIterator = storage.NewStaticIterator[storage.CloudImage](nil)
	for _, profile := range profiles {
		iter, err := q.backend.ReadCloudImages(ctx, profile.ID)
		if err != nil {
			combined.Stop()
			return nil, backendError("read cloud images", err)
		}
		combined = storage.NewCombinedIterator(combined, iter)
	}

	checker := withDuplicateMetric(
		holder.NewKeyedDuplicateChecker(storage.CloudImage.ImageKey),
		"cloudImages",
	)
	deduped := holder.NewDeduplicating(holder.FromIterator[storage.CloudImage](combined), checker)

	var candidates []storage.CloudImage
	err = deduped.Process(ctx, func(image storage.CloudImage) bool {
		if req.PoolID != "" && image.PoolID != req.PoolID {
			return true
		}
		if visible, err := q.authFilter.CanView(ctx, authz.ResourceCloudImage, image.ID); err != nil || !visible {
			return true
		}
		candidates = append(candidates, image)
		return true
	})
	if err != nil {
		return nil, backendError("stream cloud images", err)
	}
	return candidates, nil
}

// describeImage resolves one image node, serving repeated lookups from cache
// and retrying transient provider failures with exponential backoff.
func (q *ListCloudImagesQuery) describeImage(ctx context.Context, image storage.CloudImage) (types.CloudImageNode, error) {
	cacheKey := image.ProfileID + "/" + image.ID
	if node, ok := q.describeCache.Get(cacheKey); ok {
		return node, nil
	}

	var status CloudImageStatus
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), q.describeRetries),
		ctx,
	)
	err := backoff.Retry(func() error {
		var err error
		status, err = q.client.DescribeImage(ctx, image.ProfileID, image.ID)
		return err
	}, policy)
	if err != nil {
		return types.CloudImageNode{}, err
	}

	node := types.CloudImageNode{
		ID:        image.ID,
		Name:      image.Name,
		ProfileID: image.ProfileID,
		PoolID:    image.PoolID,
		State:     status.State,
		AgentIDs:  status.AgentIDs,
	}
	q.describeCache.Set(cacheKey, node, q.describeTTL)
	return node, nil
}

func imageInstanceContext(image storage.CloudImage) types.ImageInstanceContext {
	return types.ImageInstanceContext{
		ProfileID: image.ProfileID,
		PoolID:    image.PoolID,
	}
}
