// Package engine 是推荐引擎的编排层：
// 目录 + 特征编码 + 相似度矩阵 + 热度排序 + 行为日志，对外提供
// 四个查询操作和一个写操作。
//
// 查询路径对数据缺失保持 total：未知商品/未知类目/空目录一律返回
// 空结果而不是错误："商品不存在"和"商品没有相似项"在这一层
// 无法区分，需要区分的调用方可以自己用 Catalog().IndexOf 先探测。
package engine

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/shopstream/reco/catalog"
	"github.com/shopstream/reco/core"
	"github.com/shopstream/reco/feature"
	"github.com/shopstream/reco/filter"
	"github.com/shopstream/reco/interaction"
	"github.com/shopstream/reco/pipeline"
	"github.com/shopstream/reco/pkg/utils"
	"github.com/shopstream/reco/rank"
	"github.com/shopstream/reco/recall"
	"github.com/shopstream/reco/rerank"
	"github.com/shopstream/reco/similarity"
)

// snapshot 把目录和相似度矩阵绑在一起发布：
// 矩阵维度必须等于目录行数，两者只能整体替换，
// 不存在"半新半旧"的中间态被读到。
type snapshot struct {
	cat   *catalog.Catalog
	index *similarity.Matrix
}

// Engine 是推荐查询的唯一入口。
// 目录和矩阵在启动后只读；运行期唯一的写路径是行为日志追加。
type Engine struct {
	snap       atomic.Pointer[snapshot]
	log        core.InteractionLog
	logger     *zap.Logger
	candidateK int
	rule       *filter.Rule
}

type Option func(*Engine)

// WithLogger 注入结构化日志。默认 Nop。
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithInteractionLog 替换行为日志实现（默认内存日志；
// 多实例部署时换成 interaction.StoreLog + store.RedisStore）。
func WithInteractionLog(log core.InteractionLog) Option {
	return func(e *Engine) { e.log = log }
}

// WithCandidateK 设置个性化召回的每种子候选宽度（默认 10）。
// 应大于最终 limit，给过滤/去重留够材料。
func WithCandidateK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.candidateK = k
		}
	}
}

// WithExcludeRule 设置个性化结果的业务排除规则（CEL 表达式编译产物）。
func WithExcludeRule(r *filter.Rule) Option {
	return func(e *Engine) { e.rule = r }
}

// New 构建引擎：编码目录、计算相似度矩阵（一次性阻塞计算），发布首个快照。
func New(ctx context.Context, cat *catalog.Catalog, opts ...Option) (*Engine, error) {
	e := &Engine{
		log:        interaction.NewMemoryLog(),
		logger:     zap.NewNop(),
		candidateK: 10,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.Rebuild(ctx, cat); err != nil {
		return nil, err
	}
	return e, nil
}

// Rebuild 用新目录整体重建：旁路编码 + 建矩阵，完成后原子替换快照。
// 读方要么看到旧的目录+矩阵，要么看到新的，不会交叉。
func (e *Engine) Rebuild(ctx context.Context, cat *catalog.Catalog) error {
	vectors := feature.Encode(cat)
	index, err := similarity.Build(ctx, vectors)
	if err != nil {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeInternalError, "build similarity index: "+err.Error())
	}
	e.snap.Store(&snapshot{cat: cat, index: index})
	e.logger.Info("similarity index built",
		zap.Int("products", cat.Len()),
		zap.Int("categories", len(cat.Categories())),
	)
	return nil
}

// Catalog 返回当前生效的目录快照。
func (e *Engine) Catalog() *catalog.Catalog {
	return e.snap.Load().cat
}

// Log 返回行为日志（服务层记录交互时使用）。
func (e *Engine) Log() core.InteractionLog {
	return e.log
}

func (e *Engine) snapshotFn() recall.Snapshot {
	return func() (*catalog.Catalog, *similarity.Matrix) {
		s := e.snap.Load()
		return s.cat, s.index
	}
}

// SimilarTo 返回与指定商品最相似的 limit 个商品。
// 未知商品返回空结果，不报错。
func (e *Engine) SimilarTo(productID string, limit int) []*core.Item {
	s := e.snap.Load()
	row, ok := s.cat.IndexOf(productID)
	if !ok {
		e.logger.Debug("similar query for unknown product", zap.String("product_id", productID))
		return []*core.Item{}
	}

	neighbors := s.index.Query(row, limit)
	out := make([]*core.Item, 0, len(neighbors))
	for _, nb := range neighbors {
		it := core.ProductItem(s.cat.Product(nb.Index))
		it.Score = nb.Score
		it.PutLabel("source", utils.Label{Value: "similar", Source: "recall"})
		out = append(out, it)
	}
	return out
}

// Trending 返回热度分最高的 limit 个商品。
func (e *Engine) Trending(limit int) []*core.Item {
	return rank.TopTrending(e.snap.Load().cat, limit)
}

// ByCategory 返回指定类目下评分最高的 limit 个商品，类目匹配大小写不敏感。
func (e *Engine) ByCategory(category string, limit int) []*core.Item {
	s := e.snap.Load()
	return rank.TopByRating(s.cat, s.cat.RowsByCategory(category), limit)
}

// ForUser 返回用户的个性化推荐：
//  1. 没有任何交互记录的新用户直接返回热门榜（不是错误也不是空列表）
//  2. 否则走固定 Pipeline：相似扩展召回 → 已交互过滤（+ 可选业务规则）→
//     首现去重 → TopN 截断
func (e *Engine) ForUser(ctx context.Context, userID string, limit int) ([]*core.Item, error) {
	seeds, err := e.log.ProductsFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		e.logger.Debug("no interactions, falling back to trending", zap.String("user_id", userID))
		return e.Trending(limit), nil
	}

	filters := []filter.Filter{}
	if e.rule != nil {
		filters = append(filters, e.rule)
	}

	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.Similar{
				Log:        e.log,
				Snapshot:   e.snapshotFn(),
				CandidateK: e.candidateK,
			},
			&filter.Interacted{Log: e.log},
			&filter.Node{Filters: filters},
			&rerank.Dedup{},
			&rerank.TopN{N: limit},
		},
	}

	rctx := &core.RecommendContext{UserID: userID, Scene: "personalized"}
	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*core.Item{}
	}
	return items, nil
}

// RecordInteraction 记录一条用户行为。商品不做目录存在性校验。
func (e *Engine) RecordInteraction(ctx context.Context, in *core.Interaction) error {
	if err := e.log.Append(ctx, in); err != nil {
		return err
	}
	e.logger.Debug("interaction recorded",
		zap.String("user_id", in.UserID),
		zap.String("product_id", in.ProductID),
		zap.String("type", string(in.Type)),
	)
	return nil
}

// PublishHot 把当前目录的热度榜写入有序集合（member = 商品 ID，
// score = 热度分），供 recall.Hot 或外部系统消费。
func (e *Engine) PublishHot(ctx context.Context, kv core.KeyValueStore, key string) error {
	cat := e.snap.Load().cat
	for _, p := range cat.Products() {
		if err := kv.ZAdd(ctx, key, rank.TrendingScore(p), p.ID); err != nil {
			return err
		}
	}
	return nil
}
