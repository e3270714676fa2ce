// Package resolver 把五花八门的比赛引用归一化为 canonical match id。
// 输入可能是库里分配的 id、人工输入的场次号，或 "<docid>-Qualification 9"
// 这类拼接串；解析永不报错，找不到就原样返回（尽力归一化）。
package resolver

import (
	"strings"

	"ScoutSync/internal/model"
)

// refSeparator 拼接串分隔符。"abc123-Qualification 9" 取最后一段作候选场次号
const refSeparator = "-"

// displayMaxLen 展示用引用的截断阈值（rune 数）
const displayMaxLen = 40

// Resolve 把原始引用解析为 canonical match id。
// 流程：去空白 → 含分隔符时取末段作候选 → 在已知比赛里按场次号精确匹配 →
// 命中返回该比赛 id，未命中原样返回输入。对已是 canonical id 的输入幂等。
// 同一场次号出现多条时取第一条（先到先得，顺序即 known 的遍历顺序）。
func Resolve(raw model.MatchRef, known []model.Match) string {
	candidate := strings.TrimSpace(string(raw))
	if candidate == "" {
		return string(raw)
	}

	// 已经是已知比赛的 id，直接返回
	for _, m := range known {
		if m.ID == candidate {
			return candidate
		}
	}

	label := candidate
	if idx := strings.LastIndex(candidate, refSeparator); idx >= 0 {
		if suffix := strings.TrimSpace(candidate[idx+len(refSeparator):]); suffix != "" {
			label = suffix
		}
	}

	if m, ok := findByLabel(label, known); ok {
		return m.ID
	}
	// 拼接串没命中时再用整串按场次号试一次（纯场次号输入如 "Q12" 走这里）
	if label != candidate {
		if m, ok := findByLabel(candidate, known); ok {
			return m.ID
		}
	}
	return string(raw)
}

// DisplayLabel 把存储的引用还原为人类可读场次号（展示用）。
// 精确命中已知比赛取其 label；含分隔符取末段；超长截断加省略号；其余原样。
// 注意 PlanNormalization 的匹配依赖本函数的输出，截断规则属于身份契约的一部分。
func DisplayLabel(ref string, known []model.Match) string {
	for _, m := range known {
		if m.ID == ref {
			return m.Label
		}
	}
	if idx := strings.LastIndex(ref, refSeparator); idx >= 0 {
		if suffix := strings.TrimSpace(ref[idx+len(refSeparator):]); suffix != "" {
			return suffix
		}
	}
	if r := []rune(ref); len(r) > displayMaxLen {
		return string(r[:displayMaxLen]) + "…"
	}
	return ref
}

// PlanNormalization 批量修复的纯选择阶段：给定目标场次号，
// 从观察记录中挑出引用需要改写为 canonical id 的行。
// 命中条件（任一）：引用的展示解析等于目标展示 label / 以 "-<label>" 结尾 /
// 字面等于 label；已等于 canonical id 的行排除。两次执行结果为空（幂等）。
func PlanNormalization(targetLabel string, known []model.Match, reports []model.ScoutingReport) []model.ScoutingReport {
	target, ok := findByLabel(strings.TrimSpace(targetLabel), known)
	if !ok {
		return nil
	}
	resolved := DisplayLabel(target.ID, known)

	var eligible []model.ScoutingReport
	for _, r := range reports {
		if r.CompetitionID != target.CompetitionID {
			continue
		}
		ref := string(r.MatchRef)
		if ref == target.ID {
			continue
		}
		if DisplayLabel(ref, known) == resolved ||
			strings.HasSuffix(ref, refSeparator+target.Label) ||
			ref == target.Label {
			eligible = append(eligible, r)
		}
	}
	return eligible
}

func findByLabel(label string, known []model.Match) (model.Match, bool) {
	for _, m := range known {
		if m.Label == label {
			return m, true
		}
	}
	return model.Match{}, false
}
