package mcp

import "github.com/mark3labs/mcp-go/mcp"

var createToolDef = mcp.NewTool("string_create",
	mcp.WithDescription("Analyze a string and store it. Fails with ALREADY_EXISTS if the exact same string is already stored."),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The string to analyze, stored verbatim. May be empty."),
	),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithIdempotentHintAnnotation(false),
)

var getToolDef = mcp.NewTool("string_get",
	mcp.WithDescription("Fetch the analyzed record for an exact string value."),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The exact string to look up (case and whitespace sensitive)."),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

var listToolDef = mcp.NewTool("string_list",
	mcp.WithDescription("List stored strings matching every given filter, in insertion order. Omit all filters to list everything."),
	mcp.WithBoolean("is_palindrome",
		mcp.Description("Only palindromes (true) or only non-palindromes (false). Case-insensitive; spaces and punctuation count."),
	),
	mcp.WithNumber("min_length",
		mcp.Description("Minimum length in characters, inclusive."),
	),
	mcp.WithNumber("max_length",
		mcp.Description("Maximum length in characters, inclusive."),
	),
	mcp.WithNumber("word_count",
		mcp.Description("Exact number of whitespace-separated words."),
	),
	mcp.WithString("contains_character",
		mcp.Description("A single character the string must contain (case-insensitive)."),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

var queryToolDef = mcp.NewTool("string_query",
	mcp.WithDescription(`List stored strings using a plain-English query. Understands "palindromic", "single word", "longer than N", "containing the letter X", and "containing the first vowel".`),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description(`For example "all single word palindromic strings".`),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

var deleteToolDef = mcp.NewTool("string_delete",
	mcp.WithDescription("Permanently remove the record for an exact string value."),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The exact string to remove."),
	),
	mcp.WithDestructiveHintAnnotation(true),
)

var analyzeToolDef = mcp.NewTool("string_analyze",
	mcp.WithDescription("Compute the properties of a string without storing it."),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The string to analyze."),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)
