package nodes

// Namespaces used by the linked data representation of tables
const (
	SSNO_NAMESPACE    = "https://matthiasprobst.github.io/ssno#"
	DCTERMS_NAMESPACE = "http://purl.org/dc/terms/"
	DCAT_NAMESPACE    = "http://www.w3.org/ns/dcat#"
	PROV_NAMESPACE    = "http://www.w3.org/ns/prov#"
	FOAF_NAMESPACE    = "http://xmlns.com/foaf/0.1/"
	SCHEMA_NAMESPACE  = "https://schema.org/"
	M4I_NAMESPACE     = "http://w3id.org/nfdi4ing/metadata4ing#"
	RDF_NAMESPACE     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	XSD_NAMESPACE     = "http://www.w3.org/2001/XMLSchema#"
)

// ANY_STANDARD_NAME is the sentinel for "any valid standard name of the table".
// It anchors the qualification chain and binds transformation operands to standard names
const ANY_STANDARD_NAME = SSNO_NAMESPACE + "AnyStandardName"

// Class identifiers
const (
	CLASS_STANDARD_NAME_TABLE  = SSNO_NAMESPACE + "StandardNameTable"
	CLASS_STANDARD_NAME        = SSNO_NAMESPACE + "StandardName"
	CLASS_SCALAR_STANDARD_NAME = SSNO_NAMESPACE + "ScalarStandardName"
	CLASS_VECTOR_STANDARD_NAME = SSNO_NAMESPACE + "VectorStandardName"
	CLASS_QUALIFICATION        = SSNO_NAMESPACE + "Qualification"
	CLASS_VECTOR_QUALIFICATION = SSNO_NAMESPACE + "VectorQualification"
	CLASS_TRANSFORMATION       = SSNO_NAMESPACE + "Transformation"
	CLASS_CHARACTER            = SSNO_NAMESPACE + "Character"
	CLASS_DOMAIN_CONCEPT_SET   = SSNO_NAMESPACE + "DomainConceptSet"
	CLASS_TEXTUAL_VALUE        = SSNO_NAMESPACE + "TextualValue"
	CLASS_ATTRIBUTION          = PROV_NAMESPACE + "Attribution"
	CLASS_PERSON               = PROV_NAMESPACE + "Person"
	CLASS_ORGANIZATION         = PROV_NAMESPACE + "Organization"
)

// Property identifiers
const (
	PROPERTY_TYPE                     = RDF_NAMESPACE + "type"
	PROPERTY_TITLE                    = DCTERMS_NAMESPACE + "title"
	PROPERTY_DESCRIPTION              = DCTERMS_NAMESPACE + "description"
	PROPERTY_IDENTIFIER               = DCTERMS_NAMESPACE + "identifier"
	PROPERTY_CREATED                  = DCTERMS_NAMESPACE + "created"
	PROPERTY_MODIFIED                 = DCTERMS_NAMESPACE + "modified"
	PROPERTY_VERSION                  = DCAT_NAMESPACE + "version"
	PROPERTY_QUALIFIED_ATTRIBUTION    = PROV_NAMESPACE + "qualifiedAttribution"
	PROPERTY_AGENT                    = PROV_NAMESPACE + "agent"
	PROPERTY_HAD_ROLE                 = DCAT_NAMESPACE + "hadRole"
	PROPERTY_FIRST_NAME               = FOAF_NAMESPACE + "firstName"
	PROPERTY_LAST_NAME                = FOAF_NAMESPACE + "lastName"
	PROPERTY_NAME                     = FOAF_NAMESPACE + "name"
	PROPERTY_MBOX                     = FOAF_NAMESPACE + "mbox"
	PROPERTY_HOMEPAGE                 = FOAF_NAMESPACE + "homepage"
	PROPERTY_ORCID                    = M4I_NAMESPACE + "orcidId"
	PROPERTY_ROR                      = M4I_NAMESPACE + "hasRorId"
	PROPERTY_STANDARD_NAME            = SSNO_NAMESPACE + "standardName"
	PROPERTY_UNIT                     = SSNO_NAMESPACE + "unit"
	PROPERTY_IS_STANDARD_NAME_OF      = SSNO_NAMESPACE + "isStandardNameOf"
	PROPERTY_ALIAS                    = SSNO_NAMESPACE + "alias"
	PROPERTY_HAS_STANDARD_NAME        = SSNO_NAMESPACE + "standardNames"
	PROPERTY_HAS_MODIFIER             = SSNO_NAMESPACE + "hasModifier"
	PROPERTY_HAS_DOMAIN_CONCEPT_SET   = SSNO_NAMESPACE + "hasDomainConceptSet"
	PROPERTY_HAS_PREPOSITION          = SSNO_NAMESPACE + "hasPreposition"
	PROPERTY_BEFORE                   = SSNO_NAMESPACE + "before"
	PROPERTY_AFTER                    = SSNO_NAMESPACE + "after"
	PROPERTY_HAS_VALID_VALUES         = SSNO_NAMESPACE + "hasValidValues"
	PROPERTY_HAS_STRING_VALUE         = SSNO_NAMESPACE + "hasStringValue"
	PROPERTY_HAS_VARIABLE_DESCRIPTION = SSNO_NAMESPACE + "hasVariableDescription"
	PROPERTY_ALTERS_UNIT              = SSNO_NAMESPACE + "altersUnit"
	PROPERTY_HAS_CHARACTER            = SSNO_NAMESPACE + "hasCharacter"
	PROPERTY_CHARACTER                = SSNO_NAMESPACE + "character"
	PROPERTY_ASSOCIATED_WITH          = SSNO_NAMESPACE + "associatedWith"
	PROPERTY_MODIFIER_NAME            = SCHEMA_NAMESPACE + "name"
	PROPERTY_ORDER                    = SCHEMA_NAMESPACE + "position"
)

// Prefixes maps the compact prefixes to their namespace
var Prefixes = map[string]string{
	"ssno":    SSNO_NAMESPACE,
	"dcterms": DCTERMS_NAMESPACE,
	"dcat":    DCAT_NAMESPACE,
	"prov":    PROV_NAMESPACE,
	"foaf":    FOAF_NAMESPACE,
	"schema":  SCHEMA_NAMESPACE,
	"m4i":     M4I_NAMESPACE,
	"rdf":     RDF_NAMESPACE,
	"xsd":     XSD_NAMESPACE,
}
