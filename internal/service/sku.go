package service

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/skumatrix/internal/constants"
)

const skuSuffixCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// SynthesizeSKU 从商品名称与变体组合合成可读 SKU：
// 商品段为名称小写 slug（截断到 baseMaxLen），
// 变体段为每个维度「键前 3 字符 + 值前 3 字符」，按组合顺序用 - 连接。
// 唯一性由数据库唯一索引兜底，此处只负责确定性的候选值。
func SynthesizeSKU(productName string, combination Combination, baseMaxLen int) string {
	if baseMaxLen <= 0 {
		baseMaxLen = constants.SKUBaseMaxLenDefault
	}
	base := slugifySKUBase(productName, baseMaxLen)

	parts := make([]string, 0, len(combination))
	for _, pair := range combination {
		part := skuAttributePart(pair.Key, pair.Value)
		if part != "" {
			parts = append(parts, part)
		}
	}

	segments := make([]string, 0, 2)
	if base != "" {
		segments = append(segments, base)
	}
	if len(parts) > 0 {
		segments = append(segments, strings.Join(parts, "-"))
	}
	if len(segments) == 0 {
		return "sku"
	}
	return strings.Join(segments, "-")
}

// slugifySKUBase 名称转 SKU 商品段：小写、非字母数字片段折叠为单个 -、截断
func slugifySKUBase(name string, maxLen int) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if lowered == "" {
		return ""
	}
	var b strings.Builder
	lastHyphen := false
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxLen {
		slug = strings.Trim(slug[:maxLen], "-")
	}
	return slug
}

// skuAttributePart 键值各取前 3 个字符，小写并去除非字母数字和连字符以外的字符
func skuAttributePart(key, value string) string {
	return skuFragment(key, constants.SKUAttrPartMaxLen) + skuFragment(value, constants.SKUAttrPartMaxLen)
}

func skuFragment(raw string, maxRunes int) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	count := 0
	for _, r := range lowered {
		if count >= maxRunes {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
		count++
	}
	return b.String()
}

// randomSKUSuffix 生成 n 位小写字母数字随机后缀
func randomSKUSuffix(n int) string {
	if n <= 0 {
		n = constants.SKURandomSuffixLen
	}
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(skuSuffixCharset)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand 基本不会失败，失败时退化为固定字符避免中断
			b.WriteByte('x')
			continue
		}
		b.WriteByte(skuSuffixCharset[idx.Int64()])
	}
	return b.String()
}
