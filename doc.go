// Package reco 是一个商品推荐引擎（Recommendation Kit for Commerce）。
//
// 设计要点：
// - 两路信号：商品内容相似度（one-hot 类目 + min-max 数值特征的余弦相似度）
//   与用户自己的行为历史（内容相似扩展，不是协同过滤）
// - 目录与相似度矩阵启动时一次构建、之后只读；运行期唯一可变状态是只追加的行为日志
// - 个性化路径 Pipeline-first：Recall → Filter → ReRank，Node 可插拔扩展
// - 查询路径对数据缺失保持 total：未知商品/类目/空目录返回空结果而非错误
package reco

import "github.com/shopstream/reco/pipeline"

// 轻量 facade：便于用户直接 import "reco" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindReRank = pipeline.KindReRank
)
