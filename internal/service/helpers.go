package service

import "strconv"

// formatUint 将 uint 主键转换为仓库层使用的字符串 ID
func formatUint(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
