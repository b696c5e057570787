package payloads

// PhotoCleanupPayload — задача воркеру удалить файлы фото,
// строки которых уже удалены из бд.
type PhotoCleanupPayload struct {
	PhotoIDs []int64  `json:"photo_ids"`
	Sources  []string `json:"sources"`
}

// Empty сообщает, что удалять нечего
func (p PhotoCleanupPayload) Empty() bool {
	return len(p.Sources) == 0
}
