package challenge

import (
	"context"
	"log"
	"math/rand/v2"
)

// Source 主挑战数据源（管理端维护，可能不可用）
type Source interface {
	ListChallenges(ctx context.Context) ([]Challenge, error)
	GetChallenge(ctx context.Context, id string) (*Challenge, error)
}

// Provider 挑战提供器
// 主数据源不可用或过滤结果为空时逐级降级到内置目录
type Provider struct {
	source  Source
	catalog []Challenge

	// 可注入的随机函数，便于测试
	intN func(n int) int
}

// NewProvider 创建挑战提供器，source 可以为 nil（仅用内置目录）
func NewProvider(source Source) *Provider {
	return &Provider{
		source:  source,
		catalog: BuiltinCatalog(),
		intN:    rand.IntN,
	}
}

// GetRandomChallenge 按类型和分级随机选取一个挑战
// typ 为空字符串表示不限类型
func (p *Provider) GetRandomChallenge(ctx context.Context, typ Type, rating AgeRating) *Challenge {
	if rating == "" {
		rating = RatingAll
	}

	if p.source != nil {
		primary, err := p.source.ListChallenges(ctx)
		if err != nil {
			// 主数据源不可用，降级到内置目录
			log.Printf("⚠️ 挑战数据源不可用，使用内置目录: %v", err)
		} else {
			if c := p.pick(filter(primary, typ, rating)); c != nil {
				return c
			}
			// 按类型过滤为空，放宽类型再试
			if c := p.pick(filter(primary, "", rating)); c != nil {
				return c
			}
		}
	}

	// 内置目录，同样的过滤规则
	if c := p.pick(filter(p.catalog, typ, rating)); c != nil {
		return c
	}
	if c := p.pick(filter(p.catalog, "", rating)); c != nil {
		return c
	}

	// 最后兜底：只取 ALL 分级
	return p.pick(filterRatingAll(p.catalog))
}

// GetChallenge 按 ID 查找挑战，先查主数据源再查内置目录
func (p *Provider) GetChallenge(ctx context.Context, id string) *Challenge {
	if p.source != nil {
		if c, err := p.source.GetChallenge(ctx, id); err == nil && c != nil {
			return c
		}
	}
	for i := range p.catalog {
		if p.catalog[i].ID == id {
			c := p.catalog[i]
			return &c
		}
	}
	return nil
}

// ValidateTriviaAnswer 校验问答题答案
// 挑战不存在或不是问答题时返回 false
func (p *Provider) ValidateTriviaAnswer(ctx context.Context, id string, answerIndex int) bool {
	c := p.GetChallenge(ctx, id)
	if c == nil || !c.IsTrivia() {
		return false
	}
	return c.Trivia.CorrectAnswer == answerIndex
}

// pick 从候选集中均匀随机选取，空集返回 nil
func (p *Provider) pick(candidates []Challenge) *Challenge {
	if len(candidates) == 0 {
		return nil
	}
	c := candidates[p.intN(len(candidates))]
	return &c
}

func filter(challenges []Challenge, typ Type, rating AgeRating) []Challenge {
	var out []Challenge
	for _, c := range challenges {
		if typ != "" && c.Type != typ {
			continue
		}
		if !c.matchesRating(rating) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func filterRatingAll(challenges []Challenge) []Challenge {
	var out []Challenge
	for _, c := range challenges {
		if c.AgeRating == RatingAll {
			out = append(out, c)
		}
	}
	return out
}
