package grammar

// PanelTypeDocs returns short documentation for the supported panel types,
// used to give the generation prompt context about available visualizations.
func PanelTypeDocs() map[string]string {
	return map[string]string{
		"graph":       "Traditional graph panel for time series data",
		"timeseries":  "Modern replacement for the graph panel",
		"stat":        "Single big stat value with optional sparkline and thresholds",
		"gauge":       "Radial gauge for displaying a value within a range",
		"table":       "Data in table format with column formatting options",
		"heatmap":     "Data as a heatmap with color-coded cells",
		"logs":        "Display and search log lines from logs datasources",
		"bar":         "Horizontal bar chart for comparing values across categories",
		"piechart":    "Pie chart showing proportions of a whole",
		"text":        "Text or markdown content",
		"singlestat":  "Legacy single stat panel (deprecated in favor of 'stat')",
		"dashlist":    "List of dashboards with links",
		"alertlist":   "List of alerts with their status",
		"row":         "Groups panels in a collapsible container",
		"bargauge":    "Horizontal or vertical gauge with thresholds",
		"barchart":    "Modern bar chart for comparing values across categories",
		"histogram":   "Data distribution as a histogram",
		"news":        "RSS feed display",
		"geomap":      "Geographical data on interactive maps",
		"xychart":     "Data on a Cartesian coordinate system",
		"candlestick": "Financial chart for price movements",
	}
}
