package descriptions

// Tool descriptions shown to MCP clients

const (
	ExtractFileDescription = `Extract the customs fields from one export declaration (DVE) PDF.

**When to use:** You have the path of a single declaration and need its exporter, MRN, declaration date or container number.

**Returned fields:** JSON object with "numeExportator", "mrn", "dataDeclaratie" (DD-MM), "nrContainer" and "file". Fields that were not found are omitted. A file that cannot be read yields {"file", "error"} instead.

**Examples:**
• "Which container is declared in /dve/2025/0912.pdf?"
• "Get the MRN from declaratie.pdf"

**Best practices:** Scanned declarations have no text layer and come back with no fields; only text PDFs are supported.`

	ExtractDirectoryDescription = `Extract the customs fields from every PDF directly inside a folder.

**When to use:** Batch processing of a folder of export declarations, for instance before invoicing the month's customs work.

**Returned fields:** JSON array with one object per PDF, in file name order. Each object has the same shape as customs_extract_file returns; unreadable files appear with an "error" key and never stop the batch.

**Examples:**
• "Extract all declarations in /dve/september"
• "List the MRNs of the files in the default folder"

**Best practices:** Subfolders are not searched. Leave directory empty to use the folder the server was started with.`

	ServerInfoDescription = `Show the server configuration, the default folder and the field anchors the extractor looks for.

**When to use:** Before the first extraction, to learn which folder is used by default and how each field is located in a declaration.`
)

// FieldGuide explains how each field is located in a declaration
const FieldGuide = `Field location rules:
• numeExportator: first word of the line after "Exportator [13 01]"
• mrn: a 25RO... code near the "MRN" label, or anywhere in the document when there is no label
• dataDeclaratie: the DD-MM part of the DD-MM-YYYY date on the "[15 09]" line
• nrContainer: leading letters and digits of the line after "[19 07]"`
