package synth

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"vida-fed/internal/api/dto"
)

const (
	shortUUIDAlphabet = "123456789abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	shortUUIDLength   = 22
	ellipsis          = "..."
)

// Summary 列表视图用的精简描述，不含任何文件信息
func (s *Synthesizer) Summary(v *Video) dto.VideoSummary {
	return dto.VideoSummary{
		ID:                    v.ID,
		UUID:                  v.UUID,
		ShortUUID:             ShortUUID(v.UUID),
		Name:                  v.Name,
		Category:              CategoryLabel(v.Category),
		Licence:               LicenceLabel(v.Licence),
		Language:              LanguageLabel(v.Language),
		Privacy:               PrivacyLabel(v.Privacy),
		NSFW:                  v.NSFW,
		Description:           TruncateDescription(v.Description, s.cfg.DescriptionLength),
		IsLocal:               v.IsLocal,
		IsLive:                v.IsLive,
		Duration:              v.Duration,
		Views:                 v.Views,
		Likes:                 v.Likes,
		Dislikes:              v.Dislikes,
		ThumbnailPath:         s.ThumbnailPath(v),
		PreviewPath:           s.PreviewPath(v),
		EmbedPath:             s.cfg.Paths.Embed + v.UUID,
		CreatedAt:             v.CreatedAt,
		UpdatedAt:             v.UpdatedAt,
		PublishedAt:           v.PublishedAt,
		OriginallyPublishedAt: v.OriginallyPublishedAt,
	}
}

func (s *Synthesizer) ThumbnailPath(v *Video) string {
	return s.cfg.Paths.Thumbnails + v.UUID + ".jpg"
}

func (s *Synthesizer) PreviewPath(v *Video) string {
	return s.cfg.Paths.Previews + v.UUID + ".jpg"
}

// TruncateDescription 超过 limit 个字符时截断并以 "..." 结尾，总长度不超过 limit
func TruncateDescription(desc string, limit int) string {
	desc = norm.NFC.String(desc)
	runes := []rune(desc)
	if len(runes) <= limit {
		return desc
	}
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}

// ShortUUID 将 UUID 编码为定长 base58（flickr 字母表），非法 UUID 返回空串
func ShortUUID(id string) string {
	u, err := uuid.Parse(id)
	if err != nil {
		return ""
	}
	n := new(big.Int).SetBytes(u[:])
	base := big.NewInt(int64(len(shortUUIDAlphabet)))
	mod := new(big.Int)

	var out []byte
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		out = append(out, shortUUIDAlphabet[mod.Int64()])
	}
	for len(out) < shortUUIDLength {
		out = append(out, shortUUIDAlphabet[0])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// ParseShortUUID 把 ShortUUID 还原成标准 UUID 字符串
func ParseShortUUID(short string) (string, error) {
	if short == "" || len(short) > shortUUIDLength {
		return "", fmt.Errorf("invalid short uuid %q", short)
	}
	n := new(big.Int)
	base := big.NewInt(int64(len(shortUUIDAlphabet)))
	for _, r := range short {
		idx := strings.IndexRune(shortUUIDAlphabet, r)
		if idx < 0 {
			return "", fmt.Errorf("invalid short uuid %q", short)
		}
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(idx)))
	}
	if n.BitLen() > 128 {
		return "", fmt.Errorf("invalid short uuid %q", short)
	}
	var u uuid.UUID
	n.FillBytes(u[:])
	return u.String(), nil
}
