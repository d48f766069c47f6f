package schema

// Vocabulary namespaces used by the built-in field table. Well-known terms
// come from Dublin Core and schema.org; discipline-specific terms live in
// the curation vocabulary.
const (
	dcTerms    = "http://purl.org/dc/terms/"
	schemaOrg  = "https://schema.org/"
	foafNS     = "http://xmlns.com/foaf/0.1/"
	curationNS = "https://vocab.meridios.org/curation#"
)

// Constructors for the field table. Merge strategy follows shape: only
// multilingual scalar text merges by language, everything else replaces
// the property's entries entirely.

func ml(column, property string) FieldConfig {
	return FieldConfig{Column: column, Property: property, Format: FormatMultilingual, Merge: ReplaceByLanguage}
}

func terms(column, property string) FieldConfig {
	return FieldConfig{Column: column, Property: property, Format: FormatTermList, Merge: ReplaceAll}
}

func list(column, property string) FieldConfig {
	return FieldConfig{Column: column, Property: property, Format: FormatSemicolonSplit, Merge: ReplaceAll}
}

func names(column, property string) FieldConfig {
	return FieldConfig{Column: column, Property: property, Format: FormatArray, Merge: ReplaceAll}
}

func rightsList(column string) FieldConfig {
	return FieldConfig{Column: column, Format: FormatRightsList, Merge: ReplaceAll}
}

func plain(column, property string) FieldConfig {
	return FieldConfig{Column: column, Property: property, Format: FormatPlain, Merge: ReplaceAll}
}

func sys(column, property string) FieldConfig {
	return FieldConfig{Column: column, Property: property, Format: FormatPlain, Merge: ReplaceAll, System: true}
}

func date(column, property string) FieldConfig {
	return FieldConfig{Column: column, Property: property, Format: FormatDate, Merge: ReplaceAll, System: true}
}

func uri(column, property string) FieldConfig {
	return FieldConfig{Column: column, Property: property, Format: FormatURI, Merge: ReplaceAll}
}

func sysURI(column, property string) FieldConfig {
	return FieldConfig{Column: column, Property: property, Format: FormatURI, Merge: ReplaceAll, System: true}
}

// builtinFields is the full column-to-property table. Grouped by block;
// within a block, roughly by how often the field appears in deposits.
var builtinFields = []FieldConfig{
	// Core descriptive text. Scalar, language-tagged, merged per language.
	ml("new_title", dcTerms+"title"),
	ml("new_alternative_title", dcTerms+"alternative"),
	ml("new_subtitle", schemaOrg+"alternativeHeadline"),
	ml("new_description", dcTerms+"description"),
	ml("new_abstract", dcTerms+"abstract"),
	ml("new_table_of_contents", dcTerms+"tableOfContents"),
	ml("new_technical_info", curationNS+"technicalInfo"),
	ml("new_series_information", curationNS+"seriesInformation"),
	ml("new_publisher", dcTerms+"publisher"),
	ml("new_publication_place", curationNS+"publicationPlace"),
	ml("new_provenance", dcTerms+"provenance"),
	ml("new_source", dcTerms+"source"),
	ml("new_rights_statement", dcTerms+"rights"),
	ml("new_access_statement", curationNS+"accessStatement"),
	ml("new_citation_requirement", curationNS+"citationRequirement"),
	ml("new_acknowledgement", curationNS+"acknowledgement"),
	ml("new_purpose", curationNS+"purpose"),
	ml("new_methods", curationNS+"methods"),
	ml("new_sampling_procedure", curationNS+"samplingProcedure"),
	ml("new_collection_mode", curationNS+"collectionMode"),
	ml("new_data_processing", curationNS+"dataProcessing"),
	ml("new_quality_statement", curationNS+"qualityStatement"),
	ml("new_coverage", dcTerms+"coverage"),
	ml("new_spatial_description", curationNS+"spatialDescription"),
	ml("new_temporal_description", curationNS+"temporalDescription"),
	ml("new_universe", curationNS+"universe"),
	ml("new_audience", dcTerms+"audience"),
	ml("new_instructional_method", dcTerms+"instructionalMethod"),
	ml("new_accrual_method", dcTerms+"accrualMethod"),
	ml("new_accrual_periodicity", dcTerms+"accrualPeriodicity"),
	ml("new_accrual_policy", dcTerms+"accrualPolicy"),
	ml("new_mediator", dcTerms+"mediator"),
	ml("new_extent", dcTerms+"extent"),
	ml("new_medium", dcTerms+"medium"),
	ml("new_edition", curationNS+"edition"),
	ml("new_notes", curationNS+"notes"),
	ml("new_disclaimer", curationNS+"disclaimer"),
	ml("new_funding_statement", curationNS+"fundingStatement"),
	ml("new_competing_interest", curationNS+"competingInterestStatement"),
	ml("new_ethics_statement", curationNS+"ethicsStatement"),
	ml("new_consent_statement", curationNS+"consentStatement"),
	ml("new_preservation_statement", curationNS+"preservationStatement"),
	ml("new_usage_notes", curationNS+"usageNotes"),
	ml("new_file_structure", curationNS+"fileStructure"),
	ml("new_version_changes", curationNS+"versionChanges"),

	// Keywords and classification. One entry per term, term language taken
	// from its segment, full replacement on update.
	terms("new_keywords", dcTerms+"subject"),
	terms("new_tags", curationNS+"tag"),
	terms("new_topic_classification", curationNS+"topicClassification"),
	terms("new_discipline", curationNS+"discipline"),
	terms("new_research_field", curationNS+"researchField"),
	terms("new_subject_ddc", curationNS+"subjectDDC"),
	terms("new_subject_lcsh", curationNS+"subjectLCSH"),
	terms("new_subject_mesh", curationNS+"subjectMeSH"),
	terms("new_subject_anzsrc", curationNS+"subjectANZSRC"),
	terms("new_taxonomy", curationNS+"taxonomicTerm"),
	terms("new_species", curationNS+"species"),
	terms("new_theme", curationNS+"theme"),
	terms("new_collection_keywords", curationNS+"collectionKeyword"),
	terms("new_geo_keywords", curationNS+"geographicKeyword"),
	terms("new_time_period_keywords", curationNS+"timePeriodKeyword"),
	terms("new_instrument_keywords", curationNS+"instrumentKeyword"),

	// People and organisations as simple value lists. No language, one
	// entry per item.
	list("new_creator", dcTerms+"creator"),
	list("new_author", schemaOrg+"author"),
	list("new_data_collector", curationNS+"dataCollector"),
	list("new_data_curator", curationNS+"dataCurator"),
	list("new_data_manager", curationNS+"dataManager"),
	list("new_editor", schemaOrg+"editor"),
	list("new_translator", schemaOrg+"translator"),
	list("new_depositor", curationNS+"depositor"),
	list("new_rights_holder", dcTerms+"rightsHolder"),
	list("new_copyright_holder", schemaOrg+"copyrightHolder"),
	list("new_principal_investigator", curationNS+"principalInvestigator"),
	list("new_co_investigator", curationNS+"coInvestigator"),
	list("new_project_leader", curationNS+"projectLeader"),
	list("new_project_member", curationNS+"projectMember"),
	list("new_research_group", curationNS+"researchGroup"),
	list("new_laboratory", curationNS+"laboratory"),
	list("new_department", curationNS+"department"),
	list("new_affiliation", curationNS+"affiliation"),
	list("new_degree_grantor", curationNS+"degreeGrantor"),
	list("new_thesis_advisor", curationNS+"thesisAdvisor"),
	list("new_producer", schemaOrg+"producer"),
	list("new_distributor", curationNS+"distributor"),
	list("new_hosting_institution", curationNS+"hostingInstitution"),
	list("new_sponsor", schemaOrg+"sponsor"),
	list("new_supervisor", curationNS+"supervisor"),
	list("new_contact_person", curationNS+"contactPerson"),

	// Structured name lists. All names for one language pack into a single
	// entry holding the whole list.
	names("new_contributor", dcTerms+"contributor"),
	names("new_contact", schemaOrg+"contactPoint"),
	names("new_funder", schemaOrg+"funder"),
	names("new_consortium_partner", curationNS+"consortiumPartner"),
	names("new_collaborating_institution", curationNS+"collaboratingInstitution"),
	names("new_steering_committee", curationNS+"steeringCommittee"),
	names("new_advisory_board", curationNS+"advisoryBoard"),
	names("new_maintainer", schemaOrg+"maintainer"),

	// Access list. Writes the record's rights list, not its metadata.
	rightsList("new_rights"),

	// Administrative and lifecycle state. System-owned, never a language.
	sys("new_status", curationNS+"status"),
	sys("new_resource_type", dcTerms+"type"),
	sys("new_archive_status", curationNS+"archiveStatus"),
	sys("new_workflow_state", curationNS+"workflowState"),
	sys("new_data_package_reference", curationNS+"dataPackageReference"),
	sys("new_version", schemaOrg+"version"),
	sys("new_version_label", curationNS+"versionLabel"),
	sys("new_publication_status", curationNS+"publicationStatus"),
	sys("new_access_level", curationNS+"accessLevel"),
	sys("new_embargo_reason", curationNS+"embargoReason"),
	sys("new_retention_period", curationNS+"retentionPeriodYears"),
	sys("new_retention_policy", curationNS+"retentionPolicy"),
	sys("new_data_classification", curationNS+"dataClassification"),
	sys("new_storage_location", curationNS+"storageLocation"),
	sys("new_archive_location", curationNS+"archiveLocation"),
	sys("new_collection_name", curationNS+"collectionName"),
	sys("new_package_size", curationNS+"packageSize"),
	sys("new_file_count", curationNS+"fileCount"),
	sys("new_total_size_bytes", curationNS+"totalSizeBytes"),
	sys("new_checksum_algorithm", curationNS+"checksumAlgorithm"),
	sys("new_curation_level", curationNS+"curationLevel"),
	sys("new_review_status", curationNS+"reviewStatus"),
	sys("new_deposit_agreement", curationNS+"depositAgreement"),
	sys("new_compliance_framework", curationNS+"complianceFramework"),
	sys("new_sensitivity", curationNS+"sensitivity"),
	sys("new_anonymisation_status", curationNS+"anonymisationStatus"),

	// Identifiers and codes.
	plain("new_isbn", schemaOrg+"isbn"),
	plain("new_issn", schemaOrg+"issn"),
	plain("new_pmid", curationNS+"pubmedID"),
	plain("new_handle", curationNS+"handle"),
	plain("new_ark", curationNS+"ark"),
	plain("new_urn", curationNS+"urn"),
	plain("new_local_identifier", curationNS+"localIdentifier"),
	plain("new_accession_number", curationNS+"accessionNumber"),
	plain("new_catalog_number", curationNS+"catalogNumber"),
	plain("new_inventory_number", curationNS+"inventoryNumber"),
	plain("new_grant_number", curationNS+"grantNumber"),
	plain("new_project_code", curationNS+"projectCode"),
	plain("new_study_id", curationNS+"studyID"),
	plain("new_trial_registration", curationNS+"trialRegistrationNumber"),
	plain("new_protocol_number", curationNS+"protocolNumber"),
	plain("new_ethics_approval_number", curationNS+"ethicsApprovalNumber"),
	plain("new_publisher_ror", curationNS+"publisherROR"),
	plain("new_wikidata", curationNS+"wikidataID"),
	plain("new_geonames_id", curationNS+"geonamesID"),
	plain("new_instrument_id", curationNS+"instrumentID"),
	plain("new_facility_id", curationNS+"facilityID"),
	plain("new_experiment_id", curationNS+"experimentID"),
	plain("new_run_number", curationNS+"runNumber"),
	plain("new_batch_number", curationNS+"batchNumber"),
	plain("new_sample_id", curationNS+"sampleID"),
	plain("new_site_code", curationNS+"siteCode"),
	plain("new_station_code", curationNS+"stationCode"),
	plain("new_cruise_number", curationNS+"cruiseNumber"),

	// Geospatial description.
	plain("new_geo_bounding_box", curationNS+"geoBoundingBox"),
	plain("new_latitude", schemaOrg+"latitude"),
	plain("new_longitude", schemaOrg+"longitude"),
	plain("new_altitude", curationNS+"altitude"),
	plain("new_depth", curationNS+"depth"),
	plain("new_elevation", schemaOrg+"elevation"),
	plain("new_coordinate_system", curationNS+"coordinateSystem"),
	plain("new_spatial_resolution", curationNS+"spatialResolution"),
	plain("new_geo_location_place", curationNS+"geoLocationPlace"),
	plain("new_region", curationNS+"region"),
	plain("new_municipality", curationNS+"municipality"),
	plain("new_water_body", curationNS+"waterBody"),
	plain("new_map_scale", curationNS+"mapScale"),
	plain("new_projection", curationNS+"mapProjection"),

	// Lifecycle and coverage dates. ISO-8601, system-owned.
	date("new_publication_date", dcTerms+"issued"),
	date("new_available_date", dcTerms+"available"),
	date("new_created_date", dcTerms+"created"),
	date("new_modified_date", dcTerms+"modified"),
	date("new_accepted_date", dcTerms+"dateAccepted"),
	date("new_submitted_date", dcTerms+"dateSubmitted"),
	date("new_copyrighted_date", dcTerms+"dateCopyrighted"),
	date("new_valid_date", dcTerms+"valid"),
	date("new_embargo_end_date", curationNS+"embargoEndDate"),
	date("new_embargo_start_date", curationNS+"embargoStartDate"),
	date("new_collection_start_date", curationNS+"collectionStartDate"),
	date("new_collection_end_date", curationNS+"collectionEndDate"),
	date("new_coverage_start_date", curationNS+"coverageStartDate"),
	date("new_coverage_end_date", curationNS+"coverageEndDate"),
	date("new_fieldwork_start_date", curationNS+"fieldworkStartDate"),
	date("new_fieldwork_end_date", curationNS+"fieldworkEndDate"),
	date("new_analysis_date", curationNS+"analysisDate"),
	date("new_processing_date", curationNS+"processingDate"),
	date("new_deposit_date", curationNS+"depositDate"),
	date("new_archive_date", curationNS+"archiveDate"),
	date("new_retention_end_date", curationNS+"retentionEndDate"),
	date("new_review_date", curationNS+"reviewDate"),
	date("new_next_review_date", curationNS+"nextReviewDate"),
	date("new_last_checked_date", curationNS+"lastCheckedDate"),
	date("new_decommission_date", curationNS+"decommissionDate"),
	date("new_ethics_approval_date", curationNS+"ethicsApprovalDate"),
	date("new_consent_date", curationNS+"consentDate"),
	date("new_agreement_date", curationNS+"agreementDate"),
	date("new_experiment_date", curationNS+"experimentDate"),
	date("new_observation_date", curationNS+"observationDate"),
	date("new_conference_date", curationNS+"conferenceDate"),

	// License and policy URIs. System-owned.
	sysURI("new_license", dcTerms+"license"),
	sysURI("new_access_rights_uri", dcTerms+"accessRights"),
	sysURI("new_resource_type_uri", curationNS+"resourceTypeURI"),
	sysURI("new_metadata_standard_uri", curationNS+"metadataStandard"),
	sysURI("new_vocabulary_uri", curationNS+"vocabularyURI"),

	// Links to related material.
	uri("new_landing_page", curationNS+"landingPage"),
	uri("new_homepage", foafNS+"homepage"),
	uri("new_documentation_url", curationNS+"documentationURL"),
	uri("new_codebook_url", curationNS+"codebookURL"),
	uri("new_protocol_url", curationNS+"protocolURL"),
	uri("new_questionnaire_url", curationNS+"questionnaireURL"),
	uri("new_software_url", curationNS+"softwareURL"),
	uri("new_source_code_url", schemaOrg+"codeRepository"),
	uri("new_data_access_url", curationNS+"dataAccessURL"),
	uri("new_api_endpoint", curationNS+"apiEndpoint"),
	uri("new_wiki_url", curationNS+"wikiURL"),
	uri("new_issue_tracker_url", curationNS+"issueTracker"),
	uri("new_preregistration_url", curationNS+"preregistrationURL"),
	uri("new_supplement_url", curationNS+"supplementURL"),
	uri("new_image_url", schemaOrg+"image"),
	uri("new_thumbnail_url", schemaOrg+"thumbnailUrl"),
	uri("new_video_url", curationNS+"videoURL"),

	// Typed relations to other resources.
	uri("new_is_version_of", dcTerms+"isVersionOf"),
	uri("new_has_version", dcTerms+"hasVersion"),
	uri("new_replaces", dcTerms+"replaces"),
	uri("new_is_replaced_by", dcTerms+"isReplacedBy"),
	uri("new_is_part_of", dcTerms+"isPartOf"),
	uri("new_has_part", dcTerms+"hasPart"),
	uri("new_references", dcTerms+"references"),
	uri("new_is_referenced_by", dcTerms+"isReferencedBy"),
	uri("new_requires", dcTerms+"requires"),
	uri("new_is_required_by", dcTerms+"isRequiredBy"),
	uri("new_conforms_to", dcTerms+"conformsTo"),
	uri("new_is_based_on", schemaOrg+"isBasedOn"),
	uri("new_is_supplement_to", curationNS+"isSupplementTo"),
	uri("new_is_derived_from", curationNS+"isDerivedFrom"),
	uri("new_is_source_of", curationNS+"isSourceOf"),
	uri("new_is_cited_by", curationNS+"isCitedBy"),
	uri("new_cites", curationNS+"cites"),

	// Further value lists.
	list("new_creator_orcid", curationNS+"creatorORCID"),
	list("new_contributor_orcid", curationNS+"contributorORCID"),
	list("new_funder_identifier", curationNS+"funderIdentifier"),
	list("new_award_numbers", curationNS+"awardNumber"),
	list("new_countries", curationNS+"country"),
	list("new_languages", dcTerms+"language"),
	list("new_formats", dcTerms+"format"),
	list("new_software_requirements", curationNS+"softwareRequirement"),
	list("new_instruments", curationNS+"instrument"),
	list("new_measurement_techniques", schemaOrg+"measurementTechnique"),
	list("new_variables_measured", schemaOrg+"variableMeasured"),
	list("new_units_of_measurement", curationNS+"unitOfMeasurement"),
	list("new_observation_types", curationNS+"observationType"),
	list("new_platforms", curationNS+"platform"),
	list("new_sensors", curationNS+"sensor"),
	list("new_stimuli", curationNS+"stimulus"),
	list("new_tasks", curationNS+"task"),
	list("new_related_publications", curationNS+"relatedPublicationCitation"),
	list("new_related_datasets", curationNS+"relatedDatasetCitation"),
	list("new_prior_versions", curationNS+"priorVersionCitation"),
	list("new_standards", curationNS+"appliedStandard"),
	list("new_certifications", curationNS+"certification"),
	list("new_diseases", curationNS+"disease"),
	list("new_genes", curationNS+"gene"),
	list("new_proteins", curationNS+"protein"),

	// Study design and methodology.
	plain("new_unit_of_analysis", curationNS+"unitOfAnalysis"),
	plain("new_population", curationNS+"studyPopulation"),
	plain("new_sample_size", curationNS+"sampleSize"),
	plain("new_response_rate", curationNS+"responseRate"),
	plain("new_sampling_frame", curationNS+"samplingFrame"),
	plain("new_collection_instrument", curationNS+"collectionInstrument"),
	plain("new_weighting", curationNS+"weightingProcedure"),
	plain("new_cleaning_operations", curationNS+"cleaningOperations"),
	plain("new_time_method", curationNS+"timeMethod"),
	plain("new_frequency_of_collection", curationNS+"collectionFrequency"),
	plain("new_kind_of_data", curationNS+"kindOfData"),
	plain("new_study_type", curationNS+"studyType"),
	plain("new_intervention_type", curationNS+"interventionType"),
	plain("new_control_condition", curationNS+"controlCondition"),
	plain("new_blinding", curationNS+"blinding"),

	// Life-science sample description.
	plain("new_organism", curationNS+"organism"),
	plain("new_tissue", curationNS+"tissue"),
	plain("new_cell_line", curationNS+"cellLine"),
	plain("new_assay_type", curationNS+"assayType"),
	plain("new_sequencing_platform", curationNS+"sequencingPlatform"),
	plain("new_reference_genome", curationNS+"referenceGenome"),
	plain("new_anatomical_region", curationNS+"anatomicalRegion"),
	plain("new_age_range", curationNS+"participantAgeRange"),
	plain("new_sex_distribution", curationNS+"sexDistribution"),

	// Journal and conference context.
	plain("new_journal_title", curationNS+"journalTitle"),
	plain("new_journal_volume", curationNS+"journalVolume"),
	plain("new_journal_issue", curationNS+"journalIssue"),
	plain("new_page_range", curationNS+"pageRange"),
	plain("new_article_number", curationNS+"articleNumber"),
	plain("new_conference_name", curationNS+"conferenceName"),
	plain("new_conference_place", curationNS+"conferencePlace"),
}
