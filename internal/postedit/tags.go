package postedit

// Toggle 未选中的项追加到末尾；已选中的项按第一次出现的位置移除。
// 总是返回新切片，不修改 items。
func Toggle(items []string, item string) []string {
	selected := cloneStrings(items)
	index := -1
	for i, s := range selected {
		if s == item {
			index = i
			break
		}
	}
	if index == -1 {
		return append(selected, item)
	}
	return append(selected[:index], selected[index+1:]...)
}
