package patcher

// ImportViewPath is the import screen component, relative to the app root.
const ImportViewPath = "src/components/Import/ImportView.tsx"

// importViewAnchor is the block right after tasks are created from an
// import preview. The component uses CRLF line endings.
const importViewAnchor = "      const createdCount = createdTasks.length;\r\n" +
	"      const totalRows = importPreview.total_rows;\r\n" +
	"\r\n" +
	"      if (createdCount === 0) {\r\n"

// importViewReplacement selects the freshly created tasks in the download
// store before the empty-import check.
const importViewReplacement = "      const createdCount = createdTasks.length;\r\n" +
	"      const totalRows = importPreview.total_rows;\r\n" +
	"\r\n" +
	"      const newTaskIds = createdTasks.map(task => task.id);\r\n" +
	"      setLatestImportTaskIds(newTaskIds);\r\n" +
	"      useDownloadStore.setState({ selectedTasks: newTaskIds });\r\n" +
	"\r\n" +
	"      if (createdCount === 0) {\r\n"

// ImportViewPatch returns the patch that makes ImportView remember and
// select the task ids created by the last import.
func ImportViewPatch() Patch {
	return Patch{
		Path:        ImportViewPath,
		Anchor:      importViewAnchor,
		Replacement: importViewReplacement,
	}
}
