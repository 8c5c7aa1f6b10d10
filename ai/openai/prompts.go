package openai

const tagsSystemPrompt = `Extract tags describing the given document and return them as JSON.

Output ONLY valid JSON. Do not include any preamble, explanation, greeting,
or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }. Your output must exactly follow this schema:

{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "tags": {
      "type": "array",
      "maxItems": 10,
      "items": {
        "type": "string",
        "pattern": "^[a-z0-9]+( [a-z0-9]+)*$"
      }
    }
  },
  "required": ["tags"],
  "additionalProperties": false
}

Rules:
- Tags must be lowercase noun phrases of 1-3 words.
- Return between 5 and 10 tags when the document supports it, fewer for very short documents.
- Include only topics that are explicitly mentioned or clearly implied by the document. Do not hallucinate.
- If no tags can be identified, return "tags": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Quarterly review of the Hamburg warehouse automation rollout, covering conveyor throughput and robot downtime."
Output:
{
  "tags": ["warehouse automation", "quarterly review", "conveyor throughput", "robot downtime", "logistics"]
}`

const summarySystemPrompt = `Summarize the given document in exactly one sentence and return it as JSON.

Output ONLY valid JSON. Do not include any preamble, explanation, greeting,
or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }. Your output must exactly follow this schema:

{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "summary": {
      "type": "string"
    }
  },
  "required": ["summary"],
  "additionalProperties": false
}

Rules:
- The summary must be a single complete sentence in plain language.
- State what the document is about, not what it contains ("Describes X", not "This document contains chapters about X").
- Do not exceed 40 words.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Minutes from the March facilities meeting. Attendees discussed the parking garage repairs and approved the lighting retrofit budget."
Output:
{
  "summary": "Records the March facilities meeting, where attendees discussed parking garage repairs and approved the lighting retrofit budget."
}`
