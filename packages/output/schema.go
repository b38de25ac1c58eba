package output

// DocumentSchema is the JSON schema of JSONOutput
const DocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["summary", "documents", "duration", "time"],
  "properties": {
    "summary": {
      "type": "object",
      "required": ["total", "valid", "invalid"],
      "properties": {
        "total": {"type": "integer", "minimum": 0},
        "valid": {"type": "integer", "minimum": 0},
        "invalid": {"type": "integer", "minimum": 0}
      }
    },
    "documents": {
      "type": "array",
      "items": {"$ref": "#/definitions/document"}
    },
    "duration": {"type": "number", "minimum": 0},
    "time": {"type": "string"}
  },
  "definitions": {
    "coefficient": {"type": "integer", "minimum": 1},
    "term": {
      "type": "object",
      "required": ["coefficient", "species"],
      "properties": {
        "coefficient": {"$ref": "#/definitions/coefficient"},
        "species": {"type": "string", "minLength": 1}
      }
    },
    "reaction": {
      "type": "object",
      "required": ["line", "reactants", "products", "rate"],
      "properties": {
        "line": {"type": "integer", "minimum": 1},
        "reactants": {"type": "array", "items": {"$ref": "#/definitions/term"}},
        "products": {"type": "array", "items": {"$ref": "#/definitions/term"}},
        "rate": {"$ref": "#/definitions/coefficient"}
      }
    },
    "speciesCount": {
      "type": "object",
      "required": ["line", "species", "count"],
      "properties": {
        "line": {"type": "integer", "minimum": 1},
        "species": {"type": "string", "minLength": 1},
        "count": {"$ref": "#/definitions/coefficient"}
      }
    },
    "error": {
      "type": "object",
      "required": ["kind", "message"],
      "properties": {
        "kind": {"type": "string"},
        "message": {"type": "string"},
        "line": {"type": "integer"},
        "column": {"type": "integer"},
        "offset": {"type": "integer"},
        "expected": {"type": "string"}
      }
    },
    "document": {
      "type": "object",
      "required": ["valid", "reactions", "speciesCounts", "species"],
      "properties": {
        "path": {"type": "string"},
        "valid": {"type": "boolean"},
        "error": {"$ref": "#/definitions/error"},
        "reactions": {"type": "array", "items": {"$ref": "#/definitions/reaction"}},
        "speciesCounts": {"type": "array", "items": {"$ref": "#/definitions/speciesCount"}},
        "species": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`
