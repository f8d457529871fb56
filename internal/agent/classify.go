package agent

import "strings"

// Vocabulary for the two actionability heuristics, in Portuguese and
// English (the assistant's historical user base spans both). Detection is
// deliberately recall-biased: a false positive only routes the message
// through the agent path, a false negative falls back to plain chat.
var (
	fileOperationVerbs = []string{
		"criar", "crie", "editar", "edite", "deletar", "delete",
		"ler", "leia", "escrever", "escreva", "salvar", "salve",
		"create", "edit", "read", "write", "save",
	}
	fileOperationNouns = []string{"arquivo", "file"}

	codeIntentVerbs = []string{
		"implementar", "implemente", "criar", "crie", "gerar", "gere",
		"adicionar", "adicione", "construir", "construa", "refatorar",
		"refatore", "corrigir", "corrija",
		"implement", "create", "generate", "add", "build", "refactor", "fix",
	}
	codeIntentNouns = []string{
		"função", "funcao", "classe", "componente", "código", "codigo",
		"function", "class", "component", "code",
	}
)

// IsActionable reports whether a free-form message looks like a request to
// act on the workspace. Two independent heuristics are OR-ed: a
// file-operation vocabulary and a code-generation vocabulary; either alone
// is sufficient.
func IsActionable(message string) bool {
	m := strings.ToLower(message)
	return matchesVocabulary(m, fileOperationVerbs, fileOperationNouns) ||
		matchesVocabulary(m, codeIntentVerbs, codeIntentNouns)
}

func matchesVocabulary(message string, verbs, nouns []string) bool {
	return containsAny(message, verbs) && containsAny(message, nouns)
}

func containsAny(message string, words []string) bool {
	for _, w := range words {
		if strings.Contains(message, w) {
			return true
		}
	}
	return false
}
