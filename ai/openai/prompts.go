package openai

const cleanSystemPrompt = `You clean ASR transcripts. Remove filler words, fix casing and punctuation, keep the meaning intact. Do not add, summarize, or invent content. Return only the cleaned transcript with no preamble.`

const cleanUserTemplate = `Raw transcript:

%s

Return the cleaned transcript.`

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "entities": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "aliases": {"type": "array", "items": {"type": "string"}}
        },
        "required": ["name"],
        "additionalProperties": false
      }
    },
    "triples": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "s": {"type": "string"},
          "p": {"type": "string"},
          "o": {"type": "string"},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1}
        },
        "required": ["s", "p", "o", "confidence"],
        "additionalProperties": false
      }
    }
  },
  "required": ["entities", "triples"],
  "additionalProperties": false
}`

const extractionPromptTemplate = `Extract entities (canonical name plus known aliases) and relation triples (subject, predicate, object) from the given text and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Include only facts that are explicitly stated or clearly implied by the text. Do not hallucinate.
- Confidence is a number from 0 to 1 reflecting how directly the text supports the triple.
- Entity names are canonical surface forms; aliases list alternate forms that appear in the text.
- If nothing can be extracted, return "entities": [] and "triples": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Marie Curie, born Maria Sklodowska, discovered polonium in 1898."
Output:
{
  "entities": [
    {"name":"Marie Curie","aliases":["Maria Sklodowska"]},
    {"name":"polonium","aliases":[]}
  ],
  "triples": [
    {"s":"Marie Curie","p":"discovered","o":"polonium","confidence":0.98}
  ]
}`
